package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckRateLimitFailsOpenWithoutRedis(t *testing.T) {
	Redis = nil

	allowed, err := CheckRateLimit("send:user-1", 30, time.Minute)
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestIsTokenBlacklistedFailsOpenWithoutRedis(t *testing.T) {
	Redis = nil

	assert.False(t, IsTokenBlacklisted("some-jti"))
	assert.False(t, IsTokenBlacklisted(""))
}

func TestBlacklistTokenErrorsWithoutRedis(t *testing.T) {
	Redis = nil

	assert.Error(t, BlacklistToken("some-jti", time.Minute))
}
