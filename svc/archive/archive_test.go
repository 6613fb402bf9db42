package archive_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghtimeline/timeline/svc/archive"
)

type fakeS3 struct {
	put      *s3.PutObjectInput
	body     string
	deadline bool
	err      error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	_, f.deadline = ctx.Deadline()
	f.put = in
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &s3.HeadBucketOutput{}, nil
}

func newArchive(t *testing.T, client archive.S3Client) *archive.S3Archive {
	t.Helper()
	a, err := archive.NewS3Archive(context.Background(), archive.Config{
		Bucket:  "digests",
		Region:  "us-east-1",
		Prefix:  "sent",
		Timeout: time.Second,
	}, archive.WithS3Client(client), archive.WithIDFunc(func() string { return "abc" }))
	require.NoError(t, err)
	return a
}

func TestS3Archive_Archive(t *testing.T) {
	t.Parallel()

	client := &fakeS3{}
	a := newArchive(t, client)

	key, err := a.Archive(context.Background(), archive.Digest{
		HTML:        "<html>digest</html>",
		EventsCount: 15,
		Recipients:  3,
		GeneratedAt: time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "sent/2024/03/09/140506-abc.html", key)

	require.NotNil(t, client.put)
	assert.Equal(t, "digests", aws.ToString(client.put.Bucket))
	assert.Equal(t, key, aws.ToString(client.put.Key))
	assert.Equal(t, "text/html; charset=utf-8", aws.ToString(client.put.ContentType))
	assert.Equal(t, map[string]string{"events-count": "15", "recipients": "3"}, client.put.Metadata)
	assert.Equal(t, "<html>digest</html>", client.body)
	assert.True(t, client.deadline)
}

func TestS3Archive_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, archive.ErrAccessDenied},
		{"missing bucket", &smithy.GenericAPIError{Code: "NoSuchBucket"}, archive.ErrBucketNotFound},
		{"throttled", &smithy.GenericAPIError{Code: "SlowDown"}, archive.ErrUnavailable},
		{"deadline", context.DeadlineExceeded, archive.ErrTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := newArchive(t, &fakeS3{err: tt.err})

			_, err := a.Archive(context.Background(), archive.Digest{HTML: "x", GeneratedAt: time.Now()})
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, a.Healthcheck(context.Background()), tt.want)
		})
	}

	other := errors.New("connection reset")
	_, err := newArchive(t, &fakeS3{err: other}).Archive(context.Background(), archive.Digest{HTML: "x"})
	assert.ErrorIs(t, err, other)
}

func TestNewS3Archive_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := archive.NewS3Archive(context.Background(), archive.Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, archive.ErrInvalidConfig)
	assert.False(t, archive.Config{}.Enabled())
	assert.True(t, archive.Config{Bucket: "b"}.Enabled())
}

func TestNoop(t *testing.T) {
	t.Parallel()

	key, err := archive.Noop{}.Archive(context.Background(), archive.Digest{})
	require.NoError(t, err)
	assert.Empty(t, key)
}
