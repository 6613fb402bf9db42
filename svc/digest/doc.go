// Package digest renders the HTML digest mailed to subscribers.
package digest
