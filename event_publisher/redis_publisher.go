package event_publisher

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/weedbox/holdemtable"
	"go.uber.org/zap"
)

const DefaultChannelPrefix = "holdemtable:events:"

// RedisPublisher publishes every committed event to the table's channel.
type RedisPublisher struct {
	client        *redis.Client
	channelPrefix string
	logger        *zap.Logger
}

type RedisOptions struct {
	Addr          string
	Password      string
	DB            int
	ChannelPrefix string
}

func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

func NewRedisPublisher(client *redis.Client, channelPrefix string, logger *zap.Logger) *RedisPublisher {
	if channelPrefix == "" {
		channelPrefix = DefaultChannelPrefix
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &RedisPublisher{
		client:        client,
		channelPrefix: channelPrefix,
		logger:        logger,
	}
}

func (p *RedisPublisher) Channel(tableID string) string {
	return p.channelPrefix + tableID
}

func (p *RedisPublisher) Publish(ctx context.Context, events []holdemtable.Event) error {
	for _, e := range events {
		data, err := holdemtable.MarshalEvent(e)
		if err != nil {
			return err
		}

		header := e.Header()
		if err := p.client.Publish(ctx, p.Channel(header.TableID), data).Err(); err != nil {
			return fmt.Errorf("event publisher: publish %s v%d: %w", e.Kind(), header.Version, err)
		}

		p.logger.Debug("event published",
			zap.String("table_id", header.TableID),
			zap.Int("version", header.Version),
			zap.String("kind", string(e.Kind())),
		)
	}
	return nil
}

// Subscribe decodes events published for a table until ctx is done.
func (p *RedisPublisher) Subscribe(ctx context.Context, tableID string, fn func(e holdemtable.Event)) error {
	sub := p.client.Subscribe(ctx, p.Channel(tableID))
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("event publisher: subscribe %s: %w", tableID, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			e, err := holdemtable.UnmarshalEvent([]byte(msg.Payload))
			if err != nil {
				p.logger.Warn("failed to decode event", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			fn(e)
		}
	}
}
