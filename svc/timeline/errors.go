package timeline

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrFeedUnavailable covers transport failures, non-2xx replies and
	// undecodable bodies.
	ErrFeedUnavailable = errors.New("timeline: feed unavailable")
	// ErrRateLimited is the 403/429 case of ErrFeedUnavailable.
	ErrRateLimited   = errors.New("timeline: feed rate limited")
	ErrInvalidConfig = errors.New("timeline: invalid config")
)

// FeedError describes a failed fetch. It matches ErrFeedUnavailable, and
// also ErrRateLimited when the upstream throttled the request.
type FeedError struct {
	Status     int
	RetryAfter time.Duration
	Err        error
}

func (e *FeedError) Error() string {
	switch {
	case e.RateLimited():
		return fmt.Sprintf("timeline: feed rate limited (status %d, retry after %s)", e.Status, e.RetryAfter)
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("timeline: feed unavailable (status %d): %v", e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("timeline: feed unavailable (status %d)", e.Status)
	case e.Err != nil:
		return "timeline: feed unavailable: " + e.Err.Error()
	}
	return ErrFeedUnavailable.Error()
}

func (e *FeedError) RateLimited() bool {
	return e.Status == 403 || e.Status == 429
}

func (e *FeedError) Unwrap() error { return e.Err }

func (e *FeedError) Is(target error) bool {
	switch target {
	case ErrFeedUnavailable:
		return true
	case ErrRateLimited:
		return e.RateLimited()
	}
	return false
}

// RetryAfter extracts the retry hint from a rate-limited feed error.
func RetryAfter(err error) (time.Duration, bool) {
	var fe *FeedError
	if errors.As(err, &fe) && fe.RateLimited() {
		return fe.RetryAfter, true
	}
	return 0, false
}
