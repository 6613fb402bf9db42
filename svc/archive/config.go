package archive

import "time"

type Config struct {
	Bucket         string        `env:"ARCHIVE_S3_BUCKET"`
	Region         string        `env:"ARCHIVE_S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string        `env:"ARCHIVE_S3_ACCESS_KEY_ID"`
	SecretKey      string        `env:"ARCHIVE_S3_SECRET_ACCESS_KEY"`
	Endpoint       string        `env:"ARCHIVE_S3_ENDPOINT"`
	ForcePathStyle bool          `env:"ARCHIVE_S3_FORCE_PATH_STYLE" envDefault:"false"`
	Prefix         string        `env:"ARCHIVE_S3_PREFIX" envDefault:"digests/"`
	Timeout        time.Duration `env:"ARCHIVE_TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}
