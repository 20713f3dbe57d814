package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a reachable server, e.g. STICKIES_TEST_REDIS_ADDR=localhost:6379.
func TestRedisRoundTrip(t *testing.T) {
	addr := os.Getenv("STICKIES_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STICKIES_TEST_REDIS_ADDR not set")
	}
	r := NewRedis(RedisConfig{Addr: addr, Key: "stickies-test-" + t.Name()})
	defer r.Close()
	ctx := context.Background()
	defer r.client.Del(ctx, r.key)

	records, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	notes := sampleNotes()
	require.NoError(t, r.Save(ctx, notes))
	records, err = r.Load(ctx)
	require.NoError(t, err)
	assertSameNotes(t, notes, hydrateAll(records))
}

func TestRedisUnreachableFails(t *testing.T) {
	r := NewRedis(RedisConfig{Addr: "127.0.0.1:1"})
	defer r.Close()
	_, err := r.Load(context.Background())
	assert.Error(t, err)
}
