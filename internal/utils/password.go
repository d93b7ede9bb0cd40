package utils

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

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

// tempPasswordChars excludes visually confusable characters (I/l/1, O/0)
// because reset passwords are read out or copied by hand.
const tempPasswordChars = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

// TempPassword returns a random password of n characters drawn from the
// ambiguity-free charset, using crypto/rand.
func TempPassword(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(tempPasswordChars)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = tempPasswordChars[idx.Int64()]
	}
	return string(out), nil
}
