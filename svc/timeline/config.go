package timeline

import "time"

type Config struct {
	// APIURL is the REST API root; events are read from {APIURL}/events.
	APIURL    string        `env:"GITHUB_API_URL" envDefault:"https://api.github.com/"`
	Token     string        `env:"GITHUB_TOKEN"`
	UserAgent string        `env:"GITHUB_USER_AGENT" envDefault:"GitHub-Timeline-App"`
	Timeout   time.Duration `env:"GITHUB_TIMEOUT" envDefault:"10s"`
	Limit     int           `env:"GITHUB_EVENTS_LIMIT" envDefault:"15"`
	// Timezone is the IANA location used for display timestamps.
	Timezone        string        `env:"TIMELINE_TIMEZONE" envDefault:"UTC"`
	PreviewCacheTTL time.Duration `env:"TIMELINE_PREVIEW_CACHE_TTL" envDefault:"60s"`
}
