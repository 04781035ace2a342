package order

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	OIDLength   = 10
	oidAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// NewOID returns a public order identifier. Uniqueness is checked by the
// caller against stored orders.
func NewOID() (string, error) {
	return gonanoid.Generate(oidAlphabet, OIDLength)
}

func IsOID(s string) bool {
	if len(s) != OIDLength {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
