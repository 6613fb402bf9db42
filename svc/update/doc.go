// Package update wires the subscriber list, the event feed, the digest
// renderer and the delivery driver into the trigger and preview flows.
package update
