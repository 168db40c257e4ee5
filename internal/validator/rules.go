package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	emailRegex      = "^[a-zA-Z0-9.!#$%&'*+\\/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$"
	enrollmentRegex = "^[A-Z0-9/-]{4,30}$"
)

var (
	// EmailRgx is a regular expression for validating email addresses.
	EmailRgx = regexp.MustCompile(emailRegex)
	// EnrollmentRgx matches a normalized enrollment number.
	EnrollmentRgx = regexp.MustCompile(enrollmentRegex)
)

// NotBlank returns true if a string is not empty or contains only whitespace.
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MinRunes returns true if a string is greater than or equal to a minimum number of n
func MinRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) >= n
}

// NoDuplicates returns true if all the values in a slice are unique.
func NoDuplicates[T comparable](values []T) bool {
	seen := make(map[T]struct{}, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			return false
		}
		seen[value] = struct{}{}
	}
	return true
}

// IsEmail returns true if a string is a valid email address.
func IsEmail(value string) bool {
	if len(value) > 254 {
		return false
	}
	return EmailRgx.MatchString(value)
}

// IsEnrollment returns true for a normalized enrollment number.
func IsEnrollment(value string) bool {
	return EnrollmentRgx.MatchString(value)
}
