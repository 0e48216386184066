package identity

import (
	"crypto/rand"
	"math/big"
)

const (
	passwordLength = 16

	lowerChars  = "abcdefghijkmnpqrstuvwxyz"
	upperChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars  = "23456789"
	symbolChars = "!@#$%^&*"
)

// GeneratePassword returns a random password with at least one character from
// each class. Generated once per provisioned account and mailed to the
// customer after the import commits.
func GeneratePassword() (string, error) {
	classes := []string{lowerChars, upperChars, digitChars, symbolChars}
	all := lowerChars + upperChars + digitChars + symbolChars

	buf := make([]byte, passwordLength)
	for i, class := range classes {
		ch, err := randomChar(class)
		if err != nil {
			return "", err
		}
		buf[i] = ch
	}
	for i := len(classes); i < passwordLength; i++ {
		ch, err := randomChar(all)
		if err != nil {
			return "", err
		}
		buf[i] = ch
	}

	// Shuffle so the class-guaranteed characters are not positional.
	for i := len(buf) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		buf[i], buf[j.Int64()] = buf[j.Int64()], buf[i]
	}
	return string(buf), nil
}

func randomChar(class string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(class))))
	if err != nil {
		return 0, err
	}
	return class[n.Int64()], nil
}
