package config

import (
	"sync"

	"github.com/redis/go-redis/v9"
)

// SetRedisClientForTest installs client as the shared Redis client, e.g. a redismock client.
// ConnectRedis will not replace it until ResetRedisClientForTest is called.
func SetRedisClientForTest(client *redis.Client) {
	redisOnce.Do(func() {})
	redisClient = client
}

// ResetRedisClientForTest forgets the shared client so the next ConnectRedis dials again.
func ResetRedisClientForTest() {
	redisClient = nil
	redisOnce = sync.Once{}
}
