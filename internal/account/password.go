package account

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns passwords into their stored form and checks them.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) bool
}

// PlainHasher stores passwords as given.
type PlainHasher struct{}

// Hash returns password unchanged.
func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

// Compare reports whether stored equals password.
func (PlainHasher) Compare(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// BcryptHasher stores bcrypt hashes in the password field.
type BcryptHasher struct {
	// Cost defaults to bcrypt.DefaultCost when zero.
	Cost int
}

// Hash returns the bcrypt hash of password.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare reports whether password matches the stored bcrypt hash.
func (BcryptHasher) Compare(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
