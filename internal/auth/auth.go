// Package auth handles password hashing and session tokens.
package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"
	"golang.org/x/crypto/bcrypt"

	"github.com/wildcast/wildcast/internal/model"
)

const bcryptCost = 12

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, eris.Wrap(err, "auth: hash password")
	}
	return hash, nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// Claims are the session claims embedded in a signed token.
type Claims struct {
	UserID string     `json:"uid"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	Plan   model.Plan `json:"plan"`
	jwt.RegisteredClaims
}

// Signer signs and parses session tokens with an HS256 secret.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner creates a Signer. An empty secret is rejected at construction so
// a misconfigured deployment fails at startup, not at first login.
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, eris.New("auth: jwt secret is required")
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Signer{secret: []byte(secret), ttl: ttl}, nil
}

// Sign issues a session token for the given user.
func (s *Signer) Sign(u *model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Plan:   u.Plan,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", eris.Wrap(err, "auth: sign token")
	}
	return token, nil
}

// Parse validates a token and returns its claims.
func (s *Signer) Parse(token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, eris.Wrap(err, "auth: parse token")
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, eris.New("auth: invalid token")
	}
	return claims, nil
}
