package helpers

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is the work factor used for stored passwords
const DefaultBcryptCost = 10

// MaxPasswordBytes is bcrypt's input limit; longer passwords are rejected
const MaxPasswordBytes = 72

// HashPassword hashes the plain text password using bcrypt with the given cost.
// A cost outside bcrypt's accepted range falls back to DefaultBcryptCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
