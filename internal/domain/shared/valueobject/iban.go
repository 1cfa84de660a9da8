package valueobject

import (
	"strings"
	"unicode"
)

// ibanMinLength is the shortest input that still carries a country code and check digits
const ibanMinLength = 4

// NormalizeIBAN strips all whitespace and upper-cases the input
func NormalizeIBAN(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}

// IsValidIBAN reports whether raw passes the ISO 13616 mod-97 checksum.
// The remainder is accumulated digit by digit so arbitrarily long inputs never overflow.
func IsValidIBAN(raw string) bool {
	if strings.TrimSpace(raw) == "" || len(raw) < ibanMinLength {
		return false
	}

	iban := NormalizeIBAN(raw)
	if len(iban) < ibanMinLength {
		return false
	}
	rearranged := iban[ibanMinLength:] + iban[:ibanMinLength]

	mod := 0
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			mod = (mod*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			// letters expand to two digits: A=10 ... Z=35
			v := int(r-'A') + 10
			mod = (mod*10 + v/10) % 97
			mod = (mod*10 + v%10) % 97
		default:
			return false
		}
	}
	return mod == 1
}

// FormatIBAN renders a normalized IBAN in groups of four characters
func FormatIBAN(raw string) string {
	iban := NormalizeIBAN(raw)
	var sb strings.Builder
	for i, r := range iban {
		if i > 0 && i%4 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
