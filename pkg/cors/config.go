package cors

import "time"

// Config lists what cross-origin callers may do. Origins are matched exactly.
type Config struct {
	AllowedOrigins   []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173,https://timeline99.vercel.app"`
	AllowedMethods   []string      `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string      `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Origin,Content-Type,Accept,Authorization,X-Requested-With"`
	ExposedHeaders   []string      `env:"CORS_EXPOSED_HEADERS" envSeparator:"," envDefault:"X-Request-ID,Retry-After,X-RateLimit-Limit,X-RateLimit-Remaining,X-RateLimit-Reset"`
	AllowCredentials bool          `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           time.Duration `env:"CORS_MAX_AGE" envDefault:"10m"`
}
