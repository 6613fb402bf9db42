package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// registry keeps one parsed copy per config type.
type registry struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	loaded = newRegistry()

	dotenvOnce sync.Once
)

func newRegistry() *registry {
	return &registry{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}
}

// LoadEnv loads one or more .env files into the process environment.
// Variables already present in the environment are never overridden, and
// when several files define the same key the first file wins.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv is LoadEnv that panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("failed to load env files: %v", err))
	}
}

// Load populates v from environment variables using `env` struct tags.
// Each config type is parsed once; later calls get the cached copy.
// The default .env in the working directory is read on first use if present.
//
//	type FeedConfig struct {
//		APIURL  string        `env:"GITHUB_API_URL" envDefault:"https://api.github.com/"`
//		Timeout time.Duration `env:"GITHUB_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg FeedConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// a missing .env is fine
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := typeKey[T]()
	if loaded.get(key, v) {
		return nil
	}

	loaded.mu.Lock()
	once, ok := loaded.onces[key]
	if !ok {
		once = new(sync.Once)
		loaded.onces[key] = once
	}
	loaded.mu.Unlock()

	var parseErr error
	once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			parseErr = errors.Join(ErrParsingConfig, err)
			return
		}
		loaded.mu.Lock()
		loaded.values[key] = parsed
		loaded.mu.Unlock()
	})
	if parseErr != nil {
		// allow a later retry once the environment is fixed
		loaded.mu.Lock()
		delete(loaded.onces, key)
		loaded.mu.Unlock()
		return parseErr
	}

	if loaded.get(key, v) {
		return nil
	}
	return ErrConfigNotLoaded
}

// MustLoad is Load that panics on failure. Use it for settings the process
// cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ForceReload drops the cached copy of T and parses it again.
func ForceReload[T any](v *T) error {
	key := typeKey[T]()
	loaded.mu.Lock()
	delete(loaded.values, key)
	delete(loaded.onces, key)
	loaded.mu.Unlock()
	return Load(v)
}

// ResetCache forgets every parsed config. Intended for tests.
func ResetCache() {
	loaded.mu.Lock()
	loaded.values = make(map[string]any)
	loaded.onces = make(map[string]*sync.Once)
	loaded.mu.Unlock()
}

func (r *registry) get(key string, v any) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cached, ok := r.values[key]
	if !ok {
		return false
	}
	reflect.ValueOf(v).Elem().Set(reflect.ValueOf(cached))
	return true
}

func typeKey[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
