// Package validator provides rule-based input validation.
//
// Rules are plain values built by helpers such as RequiredString or
// ValidEmail and evaluated by Apply or FirstFailure. Failures come back as
// ValidationErrors, which the HTTP layer turns into a 400 response with
// per-field details.
//
//	err := validator.FirstFailure(
//		validator.RequiredString("email", in.Email),
//		validator.ValidEmail("email", in.Email),
//		validator.MaxLenString("email", in.Email, 254),
//	)
package validator
