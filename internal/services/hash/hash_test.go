package hash

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	t.Run("produces a verifiable hash", func(t *testing.T) {
		hs := NewHashService()

		hashed, err := hs.HashPassword("secret1")
		if err != nil {
			t.Fatalf("HashPassword returned error: %v", err)
		}
		if hashed == "" {
			t.Fatal("expected non-empty hash")
		}
		if hashed == "secret1" {
			t.Fatal("hash must not equal the plaintext")
		}
		if !hs.CheckPasswordHash("secret1", hashed) {
			t.Fatal("expected hash to verify against its own plaintext")
		}
	})

	t.Run("salts every call", func(t *testing.T) {
		hs := NewHashService()

		first, err := hs.HashPassword("secret1")
		if err != nil {
			t.Fatalf("HashPassword returned error: %v", err)
		}
		second, err := hs.HashPassword("secret1")
		if err != nil {
			t.Fatalf("HashPassword returned error: %v", err)
		}
		if first == second {
			t.Fatal("expected two hashes of the same password to differ")
		}
	})

	t.Run("uses the fixed cost", func(t *testing.T) {
		hs := NewHashService()

		hashed, err := hs.HashPassword("secret1")
		if err != nil {
			t.Fatalf("HashPassword returned error: %v", err)
		}
		if !strings.HasPrefix(hashed, "$2a$10$") {
			t.Fatalf("expected bcrypt cost 10 prefix, got %q", hashed[:7])
		}
	})
}

func TestCheckPasswordHash(t *testing.T) {
	hs := NewHashService()

	hashed, err := hs.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	t.Run("rejects a different password", func(t *testing.T) {
		if hs.CheckPasswordHash("secret2", hashed) {
			t.Fatal("expected mismatch for a different password")
		}
	})

	t.Run("rejects garbage hashes without panicking", func(t *testing.T) {
		if hs.CheckPasswordHash("secret1", "not-a-bcrypt-hash") {
			t.Fatal("expected mismatch for a malformed hash")
		}
	})
}
