package model

import "strings"

// FormatCPF masks a CPF as 000.000.000-00, building up the mask as
// digits are typed. Non-digits in the input are ignored, which makes
// the mask idempotent: formatting already-formatted input returns it
// unchanged. Anything past 11 digits is dropped.
func FormatCPF(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 11 {
		digits = digits[:11]
	}

	switch {
	case len(digits) <= 3:
		return digits
	case len(digits) <= 6:
		return digits[:3] + "." + digits[3:]
	case len(digits) <= 9:
		return digits[:3] + "." + digits[3:6] + "." + digits[6:]
	default:
		return digits[:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:]
	}
}
