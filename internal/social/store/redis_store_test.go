package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFollowersKeyUsesConfiguredPrefix(t *testing.T) {
	s := &RedisCountStore{prefix: "kk-staging"}
	assert.Equal(t, "kk-staging:social:followers:42", s.followersKey(42))
}

func TestNormalizeCacheOptionsDefaults(t *testing.T) {
	prefix, ttl := normalizeCacheOptions("", 0)
	assert.Equal(t, defaultKeyPrefix, prefix)
	assert.Equal(t, defaultCountTTL, ttl)

	prefix, ttl = normalizeCacheOptions("custom", time.Minute)
	assert.Equal(t, "custom", prefix)
	assert.Equal(t, time.Minute, ttl)
}
