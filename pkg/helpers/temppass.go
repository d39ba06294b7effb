package helpers

import (
	"crypto/rand"
	"math/big"
)

// TempPasswordAlphabet is the character set of issued temporary passwords.
const TempPasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TempPasswordLength is the length of issued temporary passwords.
const TempPasswordLength = 8

// GenerateTemporaryPassword returns a random password of uppercase letters and digits.
func GenerateTemporaryPassword() (string, error) {
	max := big.NewInt(int64(len(TempPasswordAlphabet)))
	b := make([]byte, TempPasswordLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = TempPasswordAlphabet[n.Int64()]
	}
	return string(b), nil
}
