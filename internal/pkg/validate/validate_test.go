package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"simple", "João Angeiras", nil},
		{"accents", "André Conceição", nil},
		{"trimmed spaces count", "  Rui  ", nil},
		{"too short", "Jo", ErrNameTooShort},
		{"empty", "", ErrNameTooShort},
		{"digits rejected", "Rui 123", ErrNameCharset},
		{"punctuation rejected", "O'Neill", ErrNameCharset},
		{"too long", "Aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", ErrNameTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Name(tt.input), tt.wantErr)
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"mobile", "912345678", nil},
		{"masked input", "912 345 678", nil},
		{"landline porto", "221234567", nil},
		{"empty", "", ErrPhoneRequired},
		{"letters only", "abc", ErrPhoneRequired},
		{"too short", "91234567", ErrPhoneLength},
		{"too long", "9123456789", ErrPhoneLength},
		{"bad prefix", "701234567", ErrPhonePrefix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Phone(tt.input), tt.wantErr)
		})
	}
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "912", FormatPhone("912"))
	assert.Equal(t, "912 345", FormatPhone("912345"))
	assert.Equal(t, "912 345 678", FormatPhone("912345678"))
	assert.Equal(t, "912 345 678", FormatPhone("912-345-678"))
	assert.Equal(t, "912 345 678", FormatPhone("9123456789999"))
}
