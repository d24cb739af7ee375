package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MilanKovacevic/FeroCast/internal/pkg/env"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// Keys for the public list endpoints. Mutations delete these so the
// next read repopulates from the database.
const (
	KeyNewsList           = "ferocast:news:list"
	KeyProductsList       = "ferocast:products:list:active"
	KeyProductsListAll    = "ferocast:products:list:all"
	DefaultListExpiration = 60 * time.Second
)

// SetupCache initializes the connection to the Redis cache server.
// A missing cache is a degradation, not a failure: reads fall through
// to the database.
func SetupCache() {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnv("CACHE_PORT", "6379")

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("Warning: Could not connect to Redis cache: %v", err)
	} else {
		log.Printf("Successfully connected to Redis cache: %s", pong)
	}
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

// Set stores a value in the cache with the given key and expiration time
func Set(key string, value interface{}, expiration time.Duration) error {
	return GetClient().Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value from the cache by key
func Get(key string) (string, error) {
	return GetClient().Get(ctx, key).Result()
}

// Delete removes values from the cache by key
func Delete(keys ...string) error {
	return GetClient().Del(ctx, keys...).Err()
}
