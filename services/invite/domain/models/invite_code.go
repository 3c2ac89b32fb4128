package models

import (
	"fmt"
	"strings"
)

// Invite code shape: 8 characters from A-Z0-9, first character alphabetic
// so codes never start with a digit (easier to read aloud over the phone).
const (
	CodeLength = 8

	// CodeAlphabet is the full character set for positions 2-8.
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// CodeFirstAlphabet is the restricted set for the first position.
	CodeFirstAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// InviteCode is a value object representing a canonical invite code.
// Construct via NewInviteCode; a zero value is not a valid code.
type InviteCode string

// NewInviteCode normalizes s and returns it as an InviteCode, or an error
// if the normalized form does not match the code shape.
func NewInviteCode(s string) (InviteCode, error) {
	n := NormalizeCode(s)
	if !IsValidCodeFormat(n) {
		return "", fmt.Errorf("code must be %d characters from A-Z0-9", CodeLength)
	}
	return InviteCode(n), nil
}

// NormalizeCode trims surrounding whitespace and upper-cases s.
// Total: never errors, returns "" for empty input. Idempotent.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsValidCodeFormat reports whether s, after normalization, is exactly
// CodeLength characters drawn from CodeAlphabet. Malformed input returns
// false rather than an error.
func IsValidCodeFormat(s string) bool {
	n := NormalizeCode(s)
	if len(n) != CodeLength {
		return false
	}
	for i := 0; i < len(n); i++ {
		if !strings.ContainsRune(CodeAlphabet, rune(n[i])) {
			return false
		}
	}
	return true
}

// String returns the underlying string value.
func (c InviteCode) String() string {
	return string(c)
}
