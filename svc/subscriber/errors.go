package subscriber

import "errors"

var (
	ErrNotFound = errors.New("subscriber not found")
	// ErrConflict is returned by Store.Insert on a unique email violation.
	ErrConflict = errors.New("subscriber already exists")
	// ErrStore wraps every non-domain storage failure.
	ErrStore = errors.New("subscriber store failure")

	ErrAlreadySubscribed = errors.New("email already subscribed")
)
