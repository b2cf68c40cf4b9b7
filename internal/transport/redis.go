package transport

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-redis/redis/v8"
	"github.com/limbo/staircircuit/internal/devicesync"
	errorvalues "github.com/limbo/staircircuit/internal/error_values"
)

const inboxTopicPrefix = "staircircuit:inbox:"

// RedisChannel carries device payloads over pub/sub inbox topics, one per
// device. Publishing is best-effort: a message published while the peer is
// not subscribed is simply gone, which matches the channel contract.
type RedisChannel struct {
	client    *redis.Client
	selfTopic string
	peerTopic string
	logger    *slog.Logger

	activated atomic.Bool
	mu        sync.Mutex
	handler   Handler
	sub       *redis.PubSub
	cancel    context.CancelFunc
}

func NewRedisChannel(client *redis.Client, deviceID, peerDeviceID string, logger *slog.Logger) *RedisChannel {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisChannel{
		client:    client,
		selfTopic: InboxTopic(deviceID),
		peerTopic: InboxTopic(peerDeviceID),
		logger:    logger,
	}
}

func InboxTopic(deviceID string) string {
	return inboxTopicPrefix + deviceID
}

func (ch *RedisChannel) SetHandler(handler Handler) {
	ch.mu.Lock()
	ch.handler = handler
	ch.mu.Unlock()
}

// Activate subscribes to this device's inbox and starts the receive loop.
func (ch *RedisChannel) Activate(ctx context.Context) error {
	if err := ch.client.Ping(ctx).Err(); err != nil {
		return errorvalues.ErrChannelInactive
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	ch.mu.Lock()
	ch.sub = ch.client.Subscribe(ctx, ch.selfTopic)
	ch.cancel = cancel
	sub := ch.sub
	ch.mu.Unlock()

	go ch.receiveLoop(loopCtx, sub)
	ch.activated.Store(true)
	return nil
}

func (ch *RedisChannel) Close() error {
	ch.activated.Store(false)
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.cancel != nil {
		ch.cancel()
	}
	if ch.sub != nil {
		return ch.sub.Close()
	}
	return nil
}

func (ch *RedisChannel) Activated() bool {
	return ch.activated.Load()
}

func (ch *RedisChannel) Send(ctx context.Context, payload devicesync.Payload) error {
	if !ch.Activated() {
		return errorvalues.ErrChannelInactive
	}
	data, err := devicesync.EncodePayload(payload)
	if err != nil {
		return err
	}
	if err := ch.client.Publish(ctx, ch.peerTopic, data).Err(); err != nil {
		ch.logger.Error("publishing to peer inbox failed", slog.String("error", err.Error()))
		return errorvalues.ErrSendFailed
	}
	return nil
}

func (ch *RedisChannel) receiveLoop(ctx context.Context, sub *redis.PubSub) {
	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				ch.activated.Store(false)
				return
			}
			payload, err := devicesync.DecodePayload([]byte(msg.Payload))
			if err != nil {
				ch.logger.Error("dropping undecodable message", slog.String("error", err.Error()))
				continue
			}
			ch.mu.Lock()
			handler := ch.handler
			ch.mu.Unlock()
			if handler != nil {
				handler(ctx, payload)
			}
		}
	}
}
