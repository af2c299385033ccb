package masking

import (
	"strings"
	"unicode/utf8"
)

const (
	maskedCardFallback    = "**** **** **** ****"
	maskedCardPrefix      = "**** **** **** "
	maskedPhoneFallback   = "***-***-****"
	maskedAddressFallback = "***MASKED ADDRESS***"
	italianPrefix         = "+39"
)

// builtinRules maps each builtin kind to its masking rule.
var builtinRules = map[PatternKind]MaskFunc{
	KindEmail:         maskEmail,
	KindCreditCard:    maskCreditCard,
	KindNationalID:    maskNationalID,
	KindPhoneNumber:   maskPhoneNumber,
	KindStreetAddress: maskStreetAddress,
}

// maskEmail keeps the domain: john.doe@example.com -> ***@example.com
func maskEmail(raw string) string {
	_, domain, ok := strings.Cut(raw, "@")
	if !ok {
		return "***"
	}
	return "***@" + domain
}

// maskCreditCard keeps the last four digits.
func maskCreditCard(raw string) string {
	digits := onlyDigits(raw)
	if len(digits) < 4 {
		return maskedCardFallback
	}
	return maskedCardPrefix + digits[len(digits)-4:]
}

// maskNationalID keeps the first three and last four characters of a
// 16-character codice fiscale.
func maskNationalID(raw string) string {
	if len(raw) != 16 {
		return strings.Repeat("*", 15)
	}
	return raw[:3] + strings.Repeat("*", 9) + raw[12:]
}

// maskPhoneNumber keeps the first three and last two digits of the local
// number. A +39 country prefix is kept verbatim and not counted as digits.
func maskPhoneNumber(raw string) string {
	prefix, local := "", raw
	if strings.HasPrefix(raw, italianPrefix) {
		local = strings.TrimLeft(raw[len(italianPrefix):], " \t")
		prefix = raw[:len(raw)-len(local)]
	}

	digits := onlyDigits(local)
	if len(digits) < 4 {
		return prefix + maskedPhoneFallback
	}
	return prefix + digits[:3] + "-***-**" + digits[len(digits)-2:]
}

// maskStreetAddress keeps the address type and the city and blanks the
// street name: Via Roma, Milano -> Via ****, Milano
func maskStreetAddress(raw string) string {
	typeAndStreet, city, ok := strings.Cut(raw, ",")
	if !ok {
		return maskedAddressFallback
	}
	typeAndStreet = strings.TrimSpace(typeAndStreet)
	city = strings.TrimSpace(city)

	addrType, street, ok := strings.Cut(typeAndStreet, " ")
	if !ok {
		return maskedAddressFallback
	}
	return addrType + " " + strings.Repeat("*", utf8.RuneCountInString(street)) + ", " + city
}

// ReplaceWith returns a masking rule that substitutes a fixed literal.
func ReplaceWith(replacement string) MaskFunc {
	return func(string) string { return replacement }
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
