package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/events"
)

const defaultChangeFeedBuffer = 256

// Publisher sends serialized events to an external channel.
type Publisher interface {
	Enabled() bool
	Publish(ctx context.Context, channel string, payload []byte) error
}

// ChangeMessage is one encoded event waiting for delivery.
type ChangeMessage struct {
	EventID string
	Channel string
	Body    []byte
}

// ChangeFeedService logs entity change events and queues them for a pub/sub channel.
// Queueing never blocks the writer: when the buffer is full the message is dropped and logged.
type ChangeFeedService struct {
	dispatcher events.Dispatcher
	publisher  Publisher
	channel    string
	queue      chan ChangeMessage
	logger     *zap.Logger
}

// NewChangeFeedService creates the service. A non-positive buffer uses the default size.
func NewChangeFeedService(dispatcher events.Dispatcher, publisher Publisher, channel string, buffer int, logger *zap.Logger) *ChangeFeedService {
	if buffer <= 0 {
		buffer = defaultChangeFeedBuffer
	}
	return &ChangeFeedService{
		dispatcher: dispatcher,
		publisher:  publisher,
		channel:    channel,
		queue:      make(chan ChangeMessage, buffer),
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *ChangeFeedService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes {
		n.dispatcher.Subscribe(eventType, n.handle)
	}
}

// Messages is drained by the delivery worker.
func (n *ChangeFeedService) Messages() <-chan ChangeMessage {
	return n.queue
}

// Deliver publishes one queued message. Failures are logged and returned.
func (n *ChangeFeedService) Deliver(ctx context.Context, msg ChangeMessage) error {
	if err := n.publisher.Publish(ctx, msg.Channel, msg.Body); err != nil {
		n.logger.Warn("publish change event",
			zap.String("channel", msg.Channel),
			zap.String("event_id", msg.EventID),
			zap.Error(err))
		return err
	}
	return nil
}

func (n *ChangeFeedService) handle(_ context.Context, event events.Event) error {
	n.logger.Info("entity changed",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int("resource_id", event.ResourceID))
	return n.enqueue(event)
}

func (n *ChangeFeedService) forwarding() bool {
	return n.publisher != nil && n.publisher.Enabled() && strings.TrimSpace(n.channel) != ""
}

func (n *ChangeFeedService) enqueue(event events.Event) error {
	if !n.forwarding() {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("encode change event", zap.String("event_id", event.ID), zap.Error(err))
		return err
	}
	select {
	case n.queue <- ChangeMessage{EventID: event.ID, Channel: n.channel, Body: body}:
	default:
		n.logger.Warn("change feed buffer full; dropping event", zap.String("event_id", event.ID))
	}
	return nil
}
