// Package subscriber manages the mailing list.
//
// Store is the storage gateway with Postgres and in-memory implementations.
// Service runs signups through a small state machine keyed by normalized
// email:
//
//	unknown  --subscribe--> active   insert, welcome mail
//	inactive --subscribe--> active   reactivate, welcome mail
//	active   --subscribe--> (none)   ErrAlreadySubscribed
//
// A unique violation racing an insert is reported as ErrAlreadySubscribed as
// well. Welcome mail failures are logged and counted only.
package subscriber
