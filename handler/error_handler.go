package handler

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/ghtimeline/timeline/binder"
	"github.com/ghtimeline/timeline/pkg/environment"
	"github.com/ghtimeline/timeline/pkg/logger"
	"github.com/ghtimeline/timeline/pkg/validator"
)

// ErrorMapper translates domain errors into HTTP errors. Modules register
// one for their sentinels; the first mapper that reports true wins.
type ErrorMapper func(err error) (HTTPError, bool)

// NewErrorHandler renders errors as ErrorBody JSON. 4xx are logged at warn,
// 5xx at error. The cause of a 5xx is exposed as details only outside
// production.
func NewErrorHandler(log *slog.Logger, mappers ...ErrorMapper) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		httpErr := classifyError(err, mappers)
		r := ctx.Request()

		level := slog.LevelWarn
		if httpErr.Code >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Component("error_handler"),
			logger.Error(err),
			logger.StatusCode(httpErr.Code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		body := ErrorBody{
			Error: httpErr.message(),
			Code:  httpErr.Key,
		}
		switch {
		case httpErr.Details != nil:
			body.Details = httpErr.Details
		case httpErr.Code >= http.StatusInternalServerError && !environment.IsProduction(r.Context()):
			body.Details = err.Error()
		}

		var opts []JSONOption
		opts = append(opts, WithJSONStatus(httpErr.Code))
		if httpErr.RetryAfter > 0 {
			secs := int(math.Ceil(httpErr.RetryAfter.Seconds()))
			body.RetryAfter = secs
			opts = append(opts, WithJSONHeader("Retry-After", strconv.Itoa(secs)))
		}

		if renderErr := JSON(body, opts...).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error response",
				logger.Component("error_handler"),
				logger.Error(renderErr),
			)
		}
	}
}

func classifyError(err error, mappers []ErrorMapper) HTTPError {
	for _, m := range mappers {
		if httpErr, ok := m(err); ok {
			return httpErr
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return ErrBadRequest.
			WithMessage("Validation failed").
			WithDetails(ve.Details())
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return ErrUnsupportedMediaType.WithMessage("Content-Type must be application/json")
	case errors.Is(err, binder.ErrBodyTooLarge):
		return ErrRequestTooLarge.WithMessage("Request body is too large")
	case errors.Is(err, binder.ErrInvalidJSON):
		return ErrBadRequest.WithMessage("Request body must be valid JSON")
	case errors.Is(err, binder.ErrInvalidForm):
		return ErrBadRequest.WithMessage("Request body must be a valid form")
	}

	return ErrInternal
}
