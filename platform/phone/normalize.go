// Package phone normalizes customer phone numbers before storage.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Numbers without a country prefix are assumed to be Dutch.
const defaultRegion = "NL"

// NormalizeE164 formats a phone number to E.164 ("+31612345678").
// Input that does not parse as a valid number is returned trimmed but
// otherwise untouched, so a typo never blocks saving a quote.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
