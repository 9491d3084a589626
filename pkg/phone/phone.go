// Package phone formats customer phone numbers for display in outbound mail.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DialURI returns a tel: URI for input parsed against region, or "" when the
// number cannot be understood. The submitted text is never rewritten; this is
// only used to make the number clickable.
func DialURI(input, region string) string {
	e164 := NormalizeE164(input, region)
	if e164 == "" {
		return ""
	}
	return "tel:" + e164
}

// NormalizeE164 formats a phone number to E.164, or returns "" when the input
// is not a valid number for region.
func NormalizeE164(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	number, err := phonenumbers.Parse(trimmed, strings.ToUpper(region))
	if err != nil {
		return ""
	}

	if !phonenumbers.IsValidNumber(number) {
		return ""
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
