// Package auth provides the credential primitives: password hashing and
// stateless session tokens.
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher turns plaintext passwords into opaque one-way hashes and
// verifies candidates against them.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. A malformed hash is a
	// mismatch, never an error.
	Verify(password, hash string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt. Every call salts
// independently, so hashing the same password twice yields different outputs,
// and the cost factor is embedded in the hash itself.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
