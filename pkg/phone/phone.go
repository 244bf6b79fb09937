package phone

import "strings"

// Digits strips every non-digit rune from raw.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsTenDigits reports whether raw normalizes to exactly ten decimal digits,
// the shape every customer phone and WhatsApp number must have.
func IsTenDigits(raw string) bool {
	return len(Digits(raw)) == 10
}

// DialingNumber converts raw into the wa.me dialing form: ten-digit numbers
// get the country calling code prefixed, already-prefixed twelve-digit numbers
// pass through, anything else is returned as bare digits for the caller to
// reject or forward as-is.
func DialingNumber(raw, callingCode string) string {
	digits := Digits(raw)
	if digits == "" {
		return ""
	}
	if len(digits) == 10 {
		return callingCode + digits
	}
	if len(digits) == len(callingCode)+10 && strings.HasPrefix(digits, callingCode) {
		return digits
	}
	return digits
}
