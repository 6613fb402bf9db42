// Package update exposes the operator endpoints that send or preview the
// digest.
package update
