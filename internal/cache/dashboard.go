package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agristack/farmdash/internal/config"
	"github.com/agristack/farmdash/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DashboardCache stores rendered tab payloads keyed by company, tab and
// filter fingerprint.
type DashboardCache interface {
	Get(ctx context.Context, companyID int64, tab string, filter *domain.DashboardFilter) ([]byte, bool)
	Set(ctx context.Context, companyID int64, tab string, filter *domain.DashboardFilter, payload []byte)
	InvalidateAll(ctx context.Context, companyID int64) error
	Close() error
}

// cacheKey fingerprints the filter so distinct filter sets never collide.
func cacheKey(companyID int64, tab string, filter *domain.DashboardFilter) string {
	fingerprint := "none"
	if filter != nil && !filter.IsZero() {
		raw, err := json.Marshal(filter)
		if err == nil {
			sum := sha1.Sum(raw)
			fingerprint = hex.EncodeToString(sum[:])
		}
	}
	return fmt.Sprintf("dashboard:%d:%s:%s", companyID, tab, fingerprint)
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func buildRedisOptions(cfg *config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid cache redis url: %w", err)
		}
		return opts, nil
	}

	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

// NewDashboardCache connects to Redis when caching is enabled, otherwise
// returns a cache that never hits. Connection failures also fall back.
func NewDashboardCache(cfg *config.CacheConfig) DashboardCache {
	if !cfg.Enabled {
		log.Info().Msg("dashboard cache disabled")
		return &noopCache{}
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		log.Error().Err(err).Msg("cache misconfigured, falling back to noop")
		return &noopCache{}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("cache redis unreachable, falling back to noop")
		return &noopCache{}
	}

	ttl := time.Duration(cfg.DashboardTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	log.Info().Str("addr", opts.Addr).Dur("ttl", ttl).Msg("dashboard cache connected")
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, companyID int64, tab string, filter *domain.DashboardFilter) ([]byte, bool) {
	payload, err := c.client.Get(ctx, cacheKey(companyID, tab, filter)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("cache read failed")
		}
		return nil, false
	}
	return payload, true
}

func (c *redisCache) Set(ctx context.Context, companyID int64, tab string, filter *domain.DashboardFilter, payload []byte) {
	if err := c.client.Set(ctx, cacheKey(companyID, tab, filter), payload, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("cache write failed")
	}
}

// InvalidateAll removes every cached payload for the company.
func (c *redisCache) InvalidateAll(ctx context.Context, companyID int64) error {
	pattern := fmt.Sprintf("dashboard:%d:*", companyID)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache delete failed: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

type noopCache struct{}

func (*noopCache) Get(ctx context.Context, companyID int64, tab string, filter *domain.DashboardFilter) ([]byte, bool) {
	return nil, false
}

func (*noopCache) Set(ctx context.Context, companyID int64, tab string, filter *domain.DashboardFilter, payload []byte) {
}

func (*noopCache) InvalidateAll(ctx context.Context, companyID int64) error { return nil }

func (*noopCache) Close() error { return nil }
