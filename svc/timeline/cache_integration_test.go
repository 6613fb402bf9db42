//go:build integration

package timeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghtimeline/timeline/pkg/testutil/containers"
	"github.com/ghtimeline/timeline/svc/timeline"
)

func TestRedisCache(t *testing.T) {
	rc := containers.NewRedis(t)
	ctx := context.Background()
	c := timeline.NewRedisCache(rc.Client, "test:")

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	events := []timeline.Event{{
		ID:        "42",
		Type:      "WatchEvent",
		Actor:     timeline.Actor{Login: "octocat", AvatarURL: "https://avatars.example/o.png"},
		Repo:      timeline.Repo{Name: "octo/repo", URL: "https://github.com/octo/repo"},
		CreatedAt: "Jan 2, 03:04 PM",
		Action:    "starred the repository",
	}}
	require.NoError(t, c.Set(ctx, "latest", events, time.Minute))

	got, ok, err := c.Get(ctx, "latest")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, events, got)

	ttl, err := rc.Client.TTL(ctx, "test:latest").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
