package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agristack/farmdash/internal/config"
	"github.com/agristack/farmdash/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Subscriber streams the per-company dashboard channel to connected clients.
type Subscriber interface {
	Subscribe(ctx context.Context, companyID int64) (<-chan domain.Event, func(), error)
}

type redisSubscriber struct {
	client *redis.Client
}

// NewSubscriber returns a subscriber on the bus Redis, or nil when the bus
// is disabled or unreachable. Callers treat nil as "events unavailable".
func NewSubscriber(cfg *config.BusConfig) Subscriber {
	if !cfg.Enabled {
		return nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		log.Error().Err(err).Msg("bus misconfigured, event stream unavailable")
		return nil
	}

	return &redisSubscriber{client: redis.NewClient(opts)}
}

func (s *redisSubscriber) Subscribe(ctx context.Context, companyID int64) (<-chan domain.Event, func(), error) {
	channel := domain.DashboardChannel(companyID)
	sub := s.client.Subscribe(ctx, channel)

	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	events := make(chan domain.Event)
	go func() {
		defer close(events)
		for msg := range sub.Channel() {
			var event domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn().Err(err).Str("channel", channel).Msg("undecodable bus message dropped")
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		_ = sub.Close()
	}

	return events, cancel, nil
}
