package auth

import "golang.org/x/crypto/bcrypt"

// DummyPasswordHash is a syntactically valid bcrypt hash matching no real
// password. Login flows compare against it when the account does not exist so
// that missing and present accounts cost the same amount of work.
const DummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword returns the bcrypt hash of plaintext at the default cost.
// The cost is intentional: it is the brute-force resistance of the scheme.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the bcrypt hash.
// Malformed hashes simply report false, never an error.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
