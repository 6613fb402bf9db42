// Package containers starts throwaway Postgres and Redis instances for
// integration tests. Everything here is behind the "integration" build tag:
//
//	go test -tags integration ./...
package containers
