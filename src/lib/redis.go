package lib

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient replaces the redis instance with a custom client
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

// InvalidateDashboards drops the cached front desk snapshots after a
// reservation or room changes state.
func InvalidateDashboards(ctx context.Context) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Del(ctx, "dashboard:receptionist", "dashboard:admin").Err(); err != nil {
		log.Printf("[redis] Error invalidating dashboard cache: %s\n", err.Error())
	}
}
