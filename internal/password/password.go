// Package password wraps bcrypt so the rest of the code never touches raw
// hash bytes. Identical plaintexts produce different stored hashes because
// bcrypt salts every call.
package password

import "golang.org/x/crypto/bcrypt"

// Hash applies bcrypt at the default work factor (10).
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. A mismatch is a
// false return, never an error.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
