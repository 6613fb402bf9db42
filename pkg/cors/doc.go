// Package cors adapts github.com/go-chi/cors to the env-driven allow-list Config.
package cors
