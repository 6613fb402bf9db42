package delivery

import "time"

type Config struct {
	// Interval is the pause between consecutive sends.
	Interval time.Duration `env:"DELIVERY_INTERVAL" envDefault:"200ms"`
	// Concurrency above 1 enables parallel sends, capped at MaxConcurrency.
	Concurrency int           `env:"DELIVERY_CONCURRENCY" envDefault:"1"`
	SendTimeout time.Duration `env:"DELIVERY_SEND_TIMEOUT" envDefault:"15s"`
}

const MaxConcurrency = 4

func (c Config) workers() int {
	return min(max(c.Concurrency, 1), MaxConcurrency)
}
