package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const duesKeyFmt = "dues:customer:%d"

var client *redis.Client

// Init initializes the Redis connection. Redis is optional: when it is
// unreachable every helper below degrades to a miss/no-op and callers
// recompute from the database.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetCachedDues returns a customer's cached dues balance if present.
// The cache is an optimization only; it is invalidated on every delivery
// transition and payment for the customer, and misses fall through to a
// full recomputation.
func GetCachedDues(ctx context.Context, customerID int) (float64, bool) {
	if client == nil {
		return 0, false
	}
	val, err := client.Get(ctx, fmt.Sprintf(duesKeyFmt, customerID)).Result()
	if err != nil {
		return 0, false
	}
	dues, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return dues, true
}

// CacheDues stores a freshly computed dues balance for 10 minutes.
func CacheDues(ctx context.Context, customerID int, dues float64) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(duesKeyFmt, customerID),
		strconv.FormatFloat(dues, 'f', -1, 64), 10*time.Minute)
}

// InvalidateDues drops the cached balance after any mutation that affects it.
func InvalidateDues(ctx context.Context, customerID int) {
	if client == nil {
		return
	}
	client.Del(ctx, fmt.Sprintf(duesKeyFmt, customerID))
}

func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int, bool) {
	if client == nil {
		return 0, false
	}
	userID, err := client.Get(ctx, hashCredentials(email, password)).Int()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(email, password), userID, 15*time.Minute)
}

// InvalidateAuth removes cached auth for a user (on password change)
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	client.Del(ctx, hashCredentials(email, password))
}
