package environment

import "context"

// Environment names the deployment the process runs in.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Staging     Environment = "staging"
)

// Config reads the environment name. APP_ENV wins over NODE_ENV, which is
// still honoured for deployments carried over from the Node service.
type Config struct {
	AppEnv  string `env:"APP_ENV"`
	NodeEnv string `env:"NODE_ENV" envDefault:"development"`
}

// Environment resolves the configured name.
func (c Config) Environment() Environment {
	if c.AppEnv != "" {
		return Environment(c.AppEnv).Normalize()
	}
	return Environment(c.NodeEnv).Normalize()
}

// Normalize maps short aliases to canonical names. Unknown values fall back
// to Development.
func (e Environment) Normalize() Environment {
	switch e {
	case Production, "prod":
		return Production
	case Staging, "stage":
		return Staging
	default:
		return Development
	}
}

func (e Environment) IsProduction() bool {
	return e.Normalize() == Production
}

type contextKey struct{}

func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext returns the environment stored in ctx, or "" if none.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction reports whether ctx carries the production environment.
// A context without an environment is treated as production so internal
// error details stay hidden by default.
func IsProduction(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == "" || env.IsProduction()
}
