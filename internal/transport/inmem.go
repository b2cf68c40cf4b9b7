package transport

import (
	"context"
	"log/slog"
	"sync"

	"github.com/limbo/staircircuit/internal/devicesync"
	errorvalues "github.com/limbo/staircircuit/internal/error_values"
)

// Handler consumes one inbound payload.
type Handler func(ctx context.Context, payload devicesync.Payload)

// InMemChannel is a store-and-forward endpoint for tests and single-process
// runs. Sends enqueue encoded bytes into the peer's inbox; nothing is
// delivered until the receiving side drains. The inbox can be reordered or
// cleared to model the channel's lack of guarantees.
type InMemChannel struct {
	mu        sync.Mutex
	activated bool
	sendErr   error
	inbox     [][]byte
	handler   Handler
	peer      *InMemChannel
	logger    *slog.Logger
}

// NewInMemPair wires two endpoints back to back, both deactivated.
func NewInMemPair(logger *slog.Logger) (*InMemChannel, *InMemChannel) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &InMemChannel{logger: logger}
	b := &InMemChannel{logger: logger}
	a.peer = b
	b.peer = a
	return a, b
}

func (ch *InMemChannel) SetHandler(handler Handler) {
	ch.mu.Lock()
	ch.handler = handler
	ch.mu.Unlock()
}

func (ch *InMemChannel) SetActivated(activated bool) {
	ch.mu.Lock()
	ch.activated = activated
	ch.mu.Unlock()
}

// FailSends makes every subsequent Send return err. Pass nil to heal.
func (ch *InMemChannel) FailSends(err error) {
	ch.mu.Lock()
	ch.sendErr = err
	ch.mu.Unlock()
}

func (ch *InMemChannel) Activated() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.activated
}

func (ch *InMemChannel) Send(_ context.Context, payload devicesync.Payload) error {
	ch.mu.Lock()
	if !ch.activated {
		ch.mu.Unlock()
		return errorvalues.ErrChannelInactive
	}
	if ch.sendErr != nil {
		err := ch.sendErr
		ch.mu.Unlock()
		return err
	}
	peer := ch.peer
	ch.mu.Unlock()

	data, err := devicesync.EncodePayload(payload)
	if err != nil {
		return err
	}
	peer.mu.Lock()
	peer.inbox = append(peer.inbox, data)
	peer.mu.Unlock()
	return nil
}

// Drain delivers every queued message in order.
func (ch *InMemChannel) Drain(ctx context.Context) {
	for ch.DeliverNext(ctx) {
	}
}

// DeliverNext hands the oldest queued message to the handler. Returns false
// when the inbox is empty.
func (ch *InMemChannel) DeliverNext(ctx context.Context) bool {
	ch.mu.Lock()
	if len(ch.inbox) == 0 {
		ch.mu.Unlock()
		return false
	}
	data := ch.inbox[0]
	ch.inbox = ch.inbox[1:]
	handler := ch.handler
	ch.mu.Unlock()

	payload, err := devicesync.DecodePayload(data)
	if err != nil {
		ch.logger.Error("dropping undecodable message", slog.String("error", err.Error()))
		return true
	}
	if handler != nil {
		handler(ctx, payload)
	}
	return true
}

// ReverseInbox flips pending delivery order, modeling message races.
func (ch *InMemChannel) ReverseInbox() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	for i, j := 0, len(ch.inbox)-1; i < j; i, j = i+1, j-1 {
		ch.inbox[i], ch.inbox[j] = ch.inbox[j], ch.inbox[i]
	}
}

// DropInbox throws away everything queued, modeling lost messages.
func (ch *InMemChannel) DropInbox() {
	ch.mu.Lock()
	ch.inbox = nil
	ch.mu.Unlock()
}

// QueuedCount reports how many messages await delivery.
func (ch *InMemChannel) QueuedCount() int {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return len(ch.inbox)
}
