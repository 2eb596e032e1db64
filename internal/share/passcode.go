package share

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWrongPasscode = errors.New("wrong share passcode")
	ErrWeakPasscode  = errors.New("passcode must be at least 4 characters")
)

// MinPasscodeLength is the shortest passcode accepted for a share link.
const MinPasscodeLength = 4

// HashPasscode validates and hashes a share link passcode.
// An empty passcode yields an empty hash (no passcode).
func HashPasscode(passcode string) (string, error) {
	if passcode == "" {
		return "", nil
	}
	if len(passcode) < MinPasscodeLength {
		return "", ErrWeakPasscode
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passcode: %w", err)
	}
	return string(hashed), nil
}

// CheckPasscode compares a passcode with a stored hash.
// Links without a hash accept any passcode.
func CheckPasscode(hash, passcode string) error {
	if hash == "" {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)); err != nil {
		return ErrWrongPasscode
	}
	return nil
}
