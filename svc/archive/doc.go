// Package archive stores a copy of every sent digest. S3Archive targets S3
// or any S3-compatible endpoint; Noop is used when no bucket is configured.
package archive
