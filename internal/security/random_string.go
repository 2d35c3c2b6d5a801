package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	digitAlphabet    = "0123456789"
	passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!#%&*+-_"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// NumericOTP returns a one-time verification code of the requested number of
// digits. Leading zeros are allowed, so the code space is the full 10^length.
func NumericOTP(length int) (string, error) {
	return RandomString(length, digitAlphabet)
}

// PlaceholderPassword returns a random credential for accounts created via
// federated login. It exists only to satisfy the mandatory credential field;
// nobody ever types it, so it is long enough to be unguessable.
func PlaceholderPassword() (string, error) {
	return RandomString(40, passwordAlphabet)
}
