// Package validate implements the booking-form field checks: client
// name and Portuguese phone numbers.
package validate

import (
	"regexp"
	"strings"
)

var (
	nameRe     = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
	nonDigitRe = regexp.MustCompile(`\D`)
)

// validPhonePrefixes are the Portuguese mobile and landline prefixes
// the booking form accepts.
var validPhonePrefixes = map[string]bool{
	"91": true, "92": true, "93": true, "96": true,
	"21": true, "22": true, "23": true, "24": true, "25": true,
	"26": true, "27": true, "28": true, "29": true,
}

// Name checks a client name: trimmed, 3-50 characters, letters
// (including Latin-1 accents) and spaces only.
func Name(name string) error {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < 3 {
		return ErrNameTooShort
	}
	if len([]rune(trimmed)) > 50 {
		return ErrNameTooLong
	}
	if !nameRe.MatchString(trimmed) {
		return ErrNameCharset
	}
	return nil
}

// Phone checks a Portuguese phone number: exactly 9 digits after
// stripping formatting, starting with a known prefix.
func Phone(phone string) error {
	cleaned := CleanPhone(phone)
	if cleaned == "" {
		return ErrPhoneRequired
	}
	if len(cleaned) != 9 {
		return ErrPhoneLength
	}
	if !validPhonePrefixes[cleaned[:2]] {
		return ErrPhonePrefix
	}
	return nil
}

// CleanPhone strips every non-digit character.
func CleanPhone(phone string) string {
	return nonDigitRe.ReplaceAllString(phone, "")
}

// FormatPhone applies the "XXX XXX XXX" display mask.
func FormatPhone(phone string) string {
	cleaned := CleanPhone(phone)
	if len(cleaned) > 9 {
		cleaned = cleaned[:9]
	}
	switch {
	case len(cleaned) <= 3:
		return cleaned
	case len(cleaned) <= 6:
		return cleaned[:3] + " " + cleaned[3:]
	default:
		return cleaned[:3] + " " + cleaned[3:6] + " " + cleaned[6:]
	}
}
