package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const MaxPincodeLength = 10

var ErrInvalidPincode = errors.New("invalid pincode")

// NormalizePincode trims surrounding space and enforces the length limit.
// Whether the pincode exists is left to the geocoder.
func NormalizePincode(s string) (string, error) {
	pc := strings.TrimSpace(s)
	if utf8.RuneCountInString(pc) > MaxPincodeLength {
		return "", fmt.Errorf("%w: must be at most %d characters", ErrInvalidPincode, MaxPincodeLength)
	}
	return pc, nil
}
