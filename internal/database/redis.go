package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/delirium95/meduzzen/internal/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Token revocation and rate limiting will be disabled.", err)
	} else {
		log.Println("Connected to Redis successfully")
	}
}

// --- Token revocation ---
// Revoked tokens are kept by JTI with a TTL equal to the token's remaining
// lifetime, so the revocation list cleans itself up.

func BlacklistToken(jti string, ttl time.Duration) error {
	if Redis == nil {
		return fmt.Errorf("redis not initialized")
	}
	key := fmt.Sprintf("revoked_token:%s", jti)
	return Redis.Set(Ctx, key, "1", ttl).Err()
}

func IsTokenBlacklisted(jti string) bool {
	if Redis == nil || jti == "" {
		return false
	}
	key := fmt.Sprintf("revoked_token:%s", jti)
	n, err := Redis.Exists(Ctx, key).Result()
	if err != nil {
		// Fail open: an unreachable revocation list must not lock everyone out
		return false
	}
	return n > 0
}

// --- Rate limiting ---
// Fixed-window counter per caller-supplied key, layered on top of the per-IP
// limiter in middleware. Fail open when redis is unavailable.

func CheckRateLimit(userId string, limit int, duration time.Duration) (bool, error) {
	if Redis == nil {
		return true, nil
	}
	key := fmt.Sprintf("rate_limit:%s", userId)
	count, err := Redis.Incr(Ctx, key).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		Redis.Expire(Ctx, key, duration)
	}

	if count > int64(limit) {
		return false, nil
	}
	return true, nil
}
