package hash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrFailedToHashPassword = errors.New("failed to hash password")

// bcryptCost is fixed at work factor 10. Raising it is a deploy-time
// decision, not a runtime knob.
const bcryptCost = 10

type HashService struct {
	cost int
}

func NewHashService() *HashService {
	return &HashService{
		cost: bcryptCost,
	}
}

// HashPassword computes a salted bcrypt hash of the plaintext. The salt is
// randomized per call, so hashing the same password twice yields different
// outputs.
func (hs *HashService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hs.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToHashPassword, err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext matches the stored hash.
// A mismatch is not an error, just false.
func (hs *HashService) CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
