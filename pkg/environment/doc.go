// Package environment carries the deployment environment through request
// contexts so handlers can decide, for example, whether to expose internal
// error details.
package environment
