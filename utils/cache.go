package utils

import (
	"context"
	"log"
	"time"

	"tasknest/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the dedicated Redis client for authorization caching.
var AuthCacheClient *redis.Client

// AuthCachePrefix namespaces cached token hashes.
const AuthCachePrefix = "auth:"

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AuthCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}
