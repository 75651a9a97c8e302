package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"beneficiary-registry/internal/domain/entity"
	"beneficiary-registry/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// RedisLookupKeyPrefix prefixes the cached option list of each table.
	RedisLookupKeyPrefix = "lookup:"

	// Timeout for individual Redis operations
	redisCacheTimeout = 2 * time.Second
)

// LookupCache keeps lookup option lists in Redis. Lookup tables are
// read-only from the application, so entries only expire by TTL.
//
// Redis failures are logged and reported as misses; the database stays the
// source of truth. A nil client disables the cache.
type LookupCache struct {
	redisClient *redis.Client
	ttl         time.Duration
	log         *logrus.Logger
}

func NewLookupCache(redisClient *redis.Client, ttl time.Duration, log *logrus.Logger) *LookupCache {
	return &LookupCache{
		redisClient: redisClient,
		ttl:         ttl,
		log:         log,
	}
}

// Get returns the cached options of a table and whether they were found.
func (c *LookupCache) Get(ctx context.Context, table entity.LookupTable) ([]entity.LookupOption, bool) {
	if c == nil || c.redisClient == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	data, err := c.redisClient.Get(ctx, lookupKey(table)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read lookup cache for %s: %+v", table.Name, err)
		}
		metrics.RecordLookupCache(table.Name, false)
		return nil, false
	}

	var options []entity.LookupOption
	if err := json.Unmarshal(data, &options); err != nil {
		c.log.Warnf("Discarding corrupt lookup cache entry for %s: %+v", table.Name, err)
		metrics.RecordLookupCache(table.Name, false)
		return nil, false
	}

	metrics.RecordLookupCache(table.Name, true)
	return options, true
}

// Set stores the options of a table with the configured TTL.
func (c *LookupCache) Set(ctx context.Context, table entity.LookupTable, options []entity.LookupOption) {
	if c == nil || c.redisClient == nil {
		return
	}

	data, err := json.Marshal(options)
	if err != nil {
		c.log.Warnf("Failed to encode lookup cache entry for %s: %+v", table.Name, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	if err := c.redisClient.Set(ctx, lookupKey(table), data, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write lookup cache for %s: %+v", table.Name, err)
		return
	}

	c.log.Debugf("Cached %d options for %s, TTL=%v", len(options), table.Name, c.ttl)
}

// Invalidate drops the cached options of the given tables.
func (c *LookupCache) Invalidate(ctx context.Context, tables ...entity.LookupTable) error {
	if c == nil || c.redisClient == nil || len(tables) == 0 {
		return nil
	}

	keys := make([]string, 0, len(tables))
	for _, table := range tables {
		keys = append(keys, lookupKey(table))
	}

	if err := c.redisClient.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete lookup cache keys: %w", err)
	}
	return nil
}

func lookupKey(table entity.LookupTable) string {
	return RedisLookupKeyPrefix + strings.ToLower(table.Name)
}
