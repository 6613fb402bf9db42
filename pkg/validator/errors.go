package validator

import "errors"

// ErrValidationFailed is returned when validation fails without field detail.
var ErrValidationFailed = errors.New("validation failed")
