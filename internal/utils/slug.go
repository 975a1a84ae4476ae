package utils

import "strings"

// Slugify deriva um identificador estavel a partir de um titulo: minusculas,
// qualquer caractere nao alfanumerico vira hifen, hifens das pontas caem.
// Determinstico: o mesmo titulo sempre produz o mesmo id.
func Slugify(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('-')
		}
	}

	return strings.Trim(b.String(), "-")
}
