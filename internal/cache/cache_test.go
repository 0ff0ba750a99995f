package cache

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Listings, *mr.Miniredis) {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	return NewListings(client, "test:listing:", time.Minute), m
}

func TestListings_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := c.GetStrings(ctx, "regions:canada")
	require.False(t, ok)

	c.SetStrings(ctx, "regions:canada", []string{"Ontario", "Quebec"})
	got, ok := c.GetStrings(ctx, "regions:canada")
	require.True(t, ok)
	require.Equal(t, []string{"Ontario", "Quebec"}, got)
}

func TestListings_TTLExpiry(t *testing.T) {
	c, m := newTestCache(t)
	ctx := context.Background()

	c.SetStrings(ctx, "cities:canada:", []string{"Toronto"})
	m.FastForward(2 * time.Minute)

	_, ok := c.GetStrings(ctx, "cities:canada:")
	require.False(t, ok)
}

func TestListings_Purge(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.SetStrings(ctx, "regions:canada", []string{"Ontario"})
	c.SetStrings(ctx, "cities:canada:", []string{"Toronto"})
	c.Purge(ctx)

	_, ok := c.GetStrings(ctx, "regions:canada")
	require.False(t, ok)
	_, ok = c.GetStrings(ctx, "cities:canada:")
	require.False(t, ok)
}

func TestListings_UnavailableBackendIsMiss(t *testing.T) {
	c, m := newTestCache(t)
	m.Close()

	_, ok := c.GetStrings(context.Background(), "regions:canada")
	require.False(t, ok)
}
