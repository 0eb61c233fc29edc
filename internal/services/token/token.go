// Package token provides JWT bearer token issuance and verification.
package token

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrMissingSecret = errors.New("signing secret is not configured")
)

const Issuer = "learning-path-api"

const defaultExpiryHours = 24

// Claims represents the JWT claims. The user ID travels in the registered
// subject claim; issuer and verifier share this one payload shape.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens. The secret is read
// once at construction and immutable afterwards.
type TokenService struct {
	secretKey []byte
	expiry    time.Duration
	parser    *jwt.Parser
}

// NewTokenService creates a new token service.
//
// Configuration comes from the environment:
//   - JWT_SECRET:        signing secret (required; issuance fails without it)
//   - JWT_EXPIRY_HOURS:  token lifetime in hours (optional, default 24)
func NewTokenService() *TokenService {
	expiry := time.Duration(defaultExpiryHours) * time.Hour
	if v := os.Getenv("JWT_EXPIRY_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			expiry = time.Duration(hours) * time.Hour
		}
	}

	return &TokenService{
		secretKey: []byte(os.Getenv("JWT_SECRET")),
		expiry:    expiry,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"HS256"}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuer(Issuer),
		),
	}
}

// GenerateToken creates a signed token whose subject is the given user ID,
// expiring one lifetime from now.
func (s *TokenService) GenerateToken(userID string) (string, error) {
	if len(s.secretKey) == 0 {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ParseToken verifies the signature and expiry of a token and returns its
// claims. Verification is strictly boolean: a token is either valid and
// decodable, or rejected.
func (s *TokenService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
