package main

import (
	"github.com/ghtimeline/timeline/pkg/cors"
	"github.com/ghtimeline/timeline/pkg/email"
	"github.com/ghtimeline/timeline/pkg/environment"
	"github.com/ghtimeline/timeline/pkg/httpserver"
	"github.com/ghtimeline/timeline/pkg/jwt"
	"github.com/ghtimeline/timeline/pkg/logger"
	"github.com/ghtimeline/timeline/pkg/pg"
	"github.com/ghtimeline/timeline/pkg/ratelimiter"
	"github.com/ghtimeline/timeline/pkg/redis"
	"github.com/ghtimeline/timeline/svc/archive"
	"github.com/ghtimeline/timeline/svc/delivery"
	"github.com/ghtimeline/timeline/svc/subscriber"
	"github.com/ghtimeline/timeline/svc/timeline"
	"github.com/ghtimeline/timeline/svc/update"
)

type appConfig struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"ghtimeline"`
	// PreviewCacheSize bounds the in-process feed cache used when Redis is off.
	PreviewCacheSize int `env:"PREVIEW_CACHE_SIZE" envDefault:"8"`

	Env        environment.Config
	Log        logger.Config
	HTTP       httpserver.Config
	DB         pg.Config
	Redis      redis.Config
	Email      email.Config
	Timeline   timeline.Config
	Subscriber subscriber.Config
	Delivery   delivery.Config
	Update     update.Config
	Archive    archive.Config
	JWT        jwt.Config
	CORS       cors.Config

	SignupLimit  ratelimiter.Config `envPrefix:"SIGNUP_RATE_LIMIT_"`
	TriggerLimit ratelimiter.Config `envPrefix:"TRIGGER_RATE_LIMIT_"`
}
