package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

const snapshotKeyPrefix = "chatbot:stock:"

func ConnectRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		fmt.Println("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(Ctx).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// SnapshotCache caches formatted stock snapshots in Redis with a TTL.
// It satisfies stocks.Cache.
type SnapshotCache struct {
	ttl time.Duration
}

func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{ttl: ttl}
}

func (c *SnapshotCache) Get(symbol string) (string, bool) {
	val, err := Redis.Get(Ctx, snapshotKeyPrefix+symbol).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *SnapshotCache) Set(symbol, snapshot string) {
	Redis.Set(Ctx, snapshotKeyPrefix+symbol, snapshot, c.ttl)
}
