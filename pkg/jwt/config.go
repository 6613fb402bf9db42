package jwt

import "time"

// Config holds settings for the operator token guard. An empty secret
// disables the guard.
type Config struct {
	Secret string        `env:"JWT_SECRET"`
	Issuer string        `env:"JWT_ISSUER" envDefault:"ghtimeline"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"1h"`
}

func (c Config) Enabled() bool {
	return c.Secret != ""
}
