package helpers

import (
	"crypto/rand"
	"math/big"
	"unicode"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// GeneratePassword returns a random password of the requested length that
// satisfies HasPasswordComplexity. Randomness comes from crypto/rand.
func GeneratePassword(length int) (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	for {
		b := make([]byte, length)
		for i := range b {
			n, err := rand.Int(rand.Reader, max)
			if err != nil {
				return "", err
			}
			b[i] = passwordAlphabet[n.Int64()]
		}
		password := string(b)
		if HasPasswordComplexity(password) {
			return password, nil
		}
	}
}

// HasPasswordComplexity reports whether s contains at least one lowercase
// letter, one uppercase letter, one digit and one punctuation character.
func HasPasswordComplexity(s string) bool {
	var lower, upper, digit, punct bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			punct = true
		}
	}
	return lower && upper && digit && punct
}
