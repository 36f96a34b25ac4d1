package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_IncrWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	count, ttl, err := client.IncrWindow(ctx, "ratelimit:login:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, ttl)

	count, ttl, err = client.IncrWindow(ctx, "ratelimit:login:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	mr.FastForward(61 * time.Second)

	count, _, err = client.IncrWindow(ctx, "ratelimit:login:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestClient_Unavailable(t *testing.T) {
	var client *Client
	_, _, err := client.IncrWindow(context.Background(), "k", time.Minute)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, client.Ping(context.Background()), ErrUnavailable)
	assert.NoError(t, client.Close())
}

func TestClient_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	_, _, err := client.IncrWindow(context.Background(), "k", time.Minute)
	assert.Error(t, err)
}
