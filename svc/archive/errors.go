package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	ErrInvalidConfig      = errors.New("archive: invalid configuration")
	ErrFailedToLoadConfig = errors.New("archive: failed to load AWS config")
	ErrBucketNotFound     = errors.New("archive: bucket not found")
	ErrAccessDenied       = errors.New("archive: access denied")
	ErrUnavailable        = errors.New("archive: storage temporarily unavailable")
	ErrTimeout            = errors.New("archive: operation timed out")
)

func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrTimeout, op)
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); code {
		case "NoSuchBucket", "NotFound":
			return ErrBucketNotFound
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %s", ErrAccessDenied, op)
		case "SlowDown", "ServiceUnavailable", "RequestTimeout":
			return fmt.Errorf("%w: %s", ErrUnavailable, op)
		default:
			return fmt.Errorf("archive: %s failed (code: %s): %w", op, code, err)
		}
	}
	return fmt.Errorf("archive: %s failed: %w", op, err)
}
