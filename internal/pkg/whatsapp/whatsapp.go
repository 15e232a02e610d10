// Package whatsapp builds wa.me deep links with a prefilled message.
package whatsapp

import (
	"net/url"
	"strings"

	"barbershop/internal/pkg/validate"
)

// Link returns the wa.me URL for a phone number and message. The number
// is reduced to digits; an empty result means no link can be built.
func Link(phone, message string) string {
	digits := validate.CleanPhone(phone)
	if digits == "" {
		return ""
	}
	u := "https://wa.me/" + digits
	if message != "" {
		u += "?text=" + url.QueryEscape(message)
	}
	return u
}

// Message expands a template against a client name. The only supported
// placeholder is {name}.
func Message(template, name string) string {
	return strings.ReplaceAll(template, "{name}", name)
}
