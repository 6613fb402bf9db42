package archive

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Digest is one sent digest as it is stored.
type Digest struct {
	HTML        string
	EventsCount int
	Recipients  int
	GeneratedAt time.Time
}

// Archiver keeps a copy of each sent digest and returns its key.
type Archiver interface {
	Archive(ctx context.Context, d Digest) (string, error)
}

// Noop discards digests.
type Noop struct{}

func (Noop) Archive(context.Context, Digest) (string, error) { return "", nil }

// S3Client is the subset of the S3 API the archive uses.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Archive writes digests to S3 or an S3-compatible store.
type S3Archive struct {
	client  S3Client
	bucket  string
	prefix  string
	timeout time.Duration
	newID   func() string
}

type Option func(*options)

type options struct {
	client     S3Client
	httpClient *http.Client
	newID      func() string
}

// WithS3Client injects a preconfigured client.
func WithS3Client(c S3Client) Option {
	return func(o *options) { o.client = c }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithIDFunc replaces the random key suffix.
func WithIDFunc(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

func NewS3Archive(ctx context.Context, cfg Config, opts ...Option) (*S3Archive, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{newID: func() string { return uuid.NewString() }}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		awsOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOpts = append(awsOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		if o.httpClient != nil {
			awsOpts = append(awsOpts, config.WithHTTPClient(o.httpClient))
		}
		awsCfg, err := config.LoadDefaultConfig(ctx, awsOpts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}
		client = s3.NewFromConfig(awsCfg, func(so *s3.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
		})
	}

	prefix := cfg.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Archive{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  prefix,
		timeout: cfg.Timeout,
		newID:   o.newID,
	}, nil
}

// Key returns the object key for a digest generated at t.
func (a *S3Archive) Key(t time.Time, id string) string {
	return a.prefix + t.UTC().Format("2006/01/02/150405") + "-" + id + ".html"
}

func (a *S3Archive) Archive(ctx context.Context, d Digest) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	key := a.Key(d.GeneratedAt, a.newID())
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(a.bucket),
		Key:          aws.String(key),
		Body:         strings.NewReader(d.HTML),
		ContentType:  aws.String("text/html; charset=utf-8"),
		CacheControl: aws.String("no-cache"),
		Metadata: map[string]string{
			"events-count": strconv.Itoa(d.EventsCount),
			"recipients":   strconv.Itoa(d.Recipients),
		},
	})
	if err != nil {
		return "", classify(err, "put digest")
	}
	return key, nil
}

// Healthcheck verifies the bucket is reachable.
func (a *S3Archive) Healthcheck(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(a.bucket)})
	return classify(err, "head bucket")
}
