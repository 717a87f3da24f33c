package realtime

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Channel carries collection names of every committed write so each server
// process refreshes its own clients.
const Channel = "salonpos:cambios"

// RedisPublisher announces changes on Channel. Failures are logged and never
// reach the caller.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, coleccion string) {
	if err := p.rdb.Publish(context.WithoutCancel(ctx), Channel, coleccion).Err(); err != nil {
		log.Warn().Err(err).Str("coleccion", coleccion).Msg("realtime: publish failed")
	}
}

// StartRedisBridge forwards Channel messages to hub until ctx is cancelled.
func StartRedisBridge(ctx context.Context, rdb *redis.Client, hub *Hub) {
	sub := rdb.Subscribe(ctx, Channel)
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		log.Info().Str("channel", Channel).Msg("realtime: redis bridge started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("realtime: redis bridge stopped")
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				hub.Notify(msg.Payload)
			}
		}
	}()
}
