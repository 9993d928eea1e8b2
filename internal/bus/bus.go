package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agristack/farmdash/internal/config"
	"github.com/agristack/farmdash/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Publisher pushes change events onto the per-company dashboard channel.
type Publisher interface {
	Publish(ctx context.Context, companyID int64, event domain.Event) error
	Close() error
}

type redisPublisher struct {
	client *redis.Client
}

func buildRedisOptions(cfg *config.BusConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid bus redis url: %w", err)
		}
		return opts, nil
	}

	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

// NewPublisher connects to Redis when the bus is enabled, otherwise returns a
// publisher that drops everything. Connection failures also fall back so the
// API keeps serving without change notifications.
func NewPublisher(cfg *config.BusConfig) Publisher {
	if !cfg.Enabled {
		log.Info().Msg("notification bus disabled, events will be dropped")
		return &noopPublisher{}
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		log.Error().Err(err).Msg("bus misconfigured, falling back to noop")
		return &noopPublisher{}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("bus redis unreachable, falling back to noop")
		return &noopPublisher{}
	}

	log.Info().Str("addr", opts.Addr).Msg("notification bus connected")
	return &redisPublisher{client: client}
}

// NewRedisPublisher wraps an existing client, used by tests and the seeder.
func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

func (p *redisPublisher) Publish(ctx context.Context, companyID int64, event domain.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %q: %w", event.Type, err)
	}

	channel := domain.DashboardChannel(companyID)
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish %q to %s: %w", event.Type, channel, err)
	}

	return nil
}

func (p *redisPublisher) Close() error {
	return p.client.Close()
}

type noopPublisher struct{}

func (*noopPublisher) Publish(ctx context.Context, companyID int64, event domain.Event) error {
	return nil
}

func (*noopPublisher) Close() error { return nil }
