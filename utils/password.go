// utils/password.go
package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the 10 rounds the rest of the system was
// provisioned with; stored hashes carry their own cost so this can be
// raised later without invalidating existing credentials.
const bcryptCost = 10

// HashPassword derives a salted one-way hash of the given plaintext
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored hash
func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
