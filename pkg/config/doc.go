// Package config loads typed configuration from environment variables.
//
// Every component of the service declares its own Config struct with `env`
// tags (github.com/caarlos0/env/v11). Load parses a struct once per type and
// caches the copy, so handlers and services can call it freely. Optional .env
// files are read through github.com/joho/godotenv, either implicitly from the
// working directory or explicitly with LoadEnv.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
// ResetCache and ForceReload exist for tests that mutate the environment.
package config
