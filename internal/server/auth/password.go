package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword computes an adaptive one-way hash of password with the given
// work factor. The cost is fixed at account creation; existing hashes keep
// the cost they were created with.
func HashPassword(password string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches the stored hash. bcrypt
// comparison is constant-time with respect to the hash structure.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
