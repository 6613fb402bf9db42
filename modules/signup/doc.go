// Package signup exposes the subscription endpoints:
//
//	POST /        subscribe or reactivate an address
//	GET  /count   number of active subscribers
package signup
