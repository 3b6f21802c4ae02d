package cache

import (
	"context"
	"testing"
	"time"

	"github.com/flexprice/rvpark/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(&config.Configuration{Cache: config.CacheConfig{UserTTL: time.Minute}})

	key := GenerateKey(PrefixUser, "user_1")
	assert.Equal(t, "user:v1:user_1", key)

	c.Set(ctx, key, "alice", 0)
	c.Set(ctx, GenerateKey(PrefixUser, "user_2"), "bob", 0)
	c.Set(ctx, "other", 1, 0)

	v, ok := c.Get(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, "alice", v)

	c.Delete(ctx, key)
	_, ok = c.Get(ctx, key)
	assert.False(t, ok)

	c.DeleteByPrefix(ctx, PrefixUser)
	_, ok = c.Get(ctx, GenerateKey(PrefixUser, "user_2"))
	assert.False(t, ok)
	_, ok = c.Get(ctx, "other")
	assert.True(t, ok)

	c.Flush(ctx)
	_, ok = c.Get(ctx, "other")
	assert.False(t, ok)
}

func TestInMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(nil)

	c.Set(ctx, "short", true, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get(ctx, "short")
	assert.False(t, ok)
}
