// Package auth holds the credential primitives (password hashing and
// validation) and the authentication gate that resolves inbound
// session tokens to identities.
package auth

import (
	passwordvalidator "github.com/wagslane/go-password-validator"
	"golang.org/x/crypto/bcrypt"
)

// Username length bounds enforced at registration.
const (
	MinUsernameLength = 6
	MaxUsernameLength = 15
)

// DefaultMinEntropy is the password strength threshold used when the
// configuration does not override it. 60 bits rejects short and
// single-class passwords while keeping realistic passphrases usable.
const DefaultMinEntropy = 60

// IsValidUsername reports whether name is within the accepted length
// bounds.
func IsValidUsername(name string) bool {
	return len(name) >= MinUsernameLength && len(name) <= MaxUsernameLength
}

// IsValidPassword reports whether password clears the minimum entropy
// bar. Strength estimation is delegated to go-password-validator
// rather than reimplemented as character-class rules.
func IsValidPassword(password string, minEntropy float64) bool {
	if minEntropy <= 0 {
		minEntropy = DefaultMinEntropy
	}
	return passwordvalidator.Validate(password, minEntropy) == nil
}

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
