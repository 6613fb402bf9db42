package logger

import (
	"log/slog"
	"strings"
	"time"
)

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Handler(name string) slog.Attr {
	return slog.String("handler", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// Email records a recipient address with the local part masked,
// e.g. "jo***@example.com".
func Email(addr string) slog.Attr {
	return slog.String("email", maskEmail(addr))
}

func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

func maskEmail(addr string) string {
	at := strings.LastIndexByte(addr, '@')
	if at <= 0 {
		return "***"
	}
	local, domain := addr[:at], addr[at:]
	keep := min(2, len(local))
	return local[:keep] + "***" + domain
}
