package validate

import "errors"

var (
	ErrNameTooShort  = errors.New("name must have at least 3 characters")
	ErrNameTooLong   = errors.New("name too long (max 50 characters)")
	ErrNameCharset   = errors.New("name must contain only letters")
	ErrPhoneRequired = errors.New("phone is required")
	ErrPhoneLength   = errors.New("phone must have 9 digits")
	ErrPhonePrefix   = errors.New("invalid phone prefix for Portugal")
)
