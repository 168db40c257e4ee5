package formatter

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// FormatPhone formats a phone number to E164 format
func FormatPhone(phone, countryCode string) (string, error) {
	countryCode = strings.ToUpper(countryCode)
	num, err := phonenumbers.Parse(phone, countryCode)
	if err != nil {
		return "", err
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Enrollment normalizes an enrollment number: surrounding and inner
// whitespace removed, letters upper-cased.
func Enrollment(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// Name collapses runs of whitespace in a display name.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
