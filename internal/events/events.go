package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"masshouse/internal/database"
	"masshouse/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

type Channel string

func (c Channel) String() string {
	return string(c)
}

const (
	// REQUESTS_CHANNEL carries submission and status-change events for the
	// admin live feed.
	REQUESTS_CHANNEL Channel = "requests"
)

type EventType string

const (
	REQUEST_SUBMITTED EventType = "request_submitted"
	STATUS_CHANGED    EventType = "status_changed"
)

// RequestEvent describes a change to one resident request. It carries only
// identifiers and the new status, never resident contact details.
type RequestEvent struct {
	ID         string             `json:"id"`
	Type       EventType          `json:"type"`
	Kind       models.RequestKind `json:"kind"`
	RequestID  uuid.UUID          `json:"requestId"`
	Reference  string             `json:"reference"`
	Status     string             `json:"status"`
	OccurredAt time.Time          `json:"occurredAt"`
}

type EventHandler func(event RequestEvent) error

// EventBus fans request events out over valkey pub/sub so every server
// instance sees submissions handled by its peers. Local handlers also receive
// events published on the same instance directly.
type EventBus struct {
	client   database.CacheClient
	log      logger.Logger
	handlers map[Channel][]EventHandler
	mutex    sync.RWMutex
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(client database.CacheClient) *EventBus {
	ctx, cancel := context.WithCancel(context.Background())

	return &EventBus{
		client:   client,
		log:      logger.New("eventBus"),
		handlers: make(map[Channel][]EventHandler),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (eb *EventBus) Publish(channel Channel, event RequestEvent) error {
	log := eb.log.Function("Publish")

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "eventID", event.ID)
	}

	ctx, cancel := context.WithTimeout(eb.ctx, 5*time.Second)
	defer cancel()

	err = eb.client.Do(ctx, eb.client.B().Publish().Channel(channel.String()).Message(string(eventData)).Build()).
		Error()
	if err != nil {
		return log.Err("failed to publish event", err, "channel", channel, "eventID", event.ID)
	}

	log.Debug("event published", "channel", channel, "type", event.Type, "reference", event.Reference)

	eb.notifyLocalHandlers(channel, event)

	return nil
}

func (eb *EventBus) Subscribe(channel Channel, handler EventHandler) error {
	log := eb.log.Function("Subscribe")

	eb.mutex.Lock()
	first := len(eb.handlers[channel]) == 0
	eb.handlers[channel] = append(eb.handlers[channel], handler)
	eb.mutex.Unlock()

	log.Info("handler subscribed", "channel", channel)

	if first {
		go eb.listenToChannel(channel)
	}

	return nil
}

func (eb *EventBus) notifyLocalHandlers(channel Channel, event RequestEvent) {
	log := eb.log.Function("notifyLocalHandlers")

	eb.mutex.RLock()
	handlers := eb.handlers[channel]
	eb.mutex.RUnlock()

	for i, handler := range handlers {
		go func(h EventHandler, handlerIndex int) {
			if err := h(event); err != nil {
				log.Er("handler failed", err,
					"channel", channel,
					"eventID", event.ID,
					"handlerIndex", handlerIndex,
				)
			}
		}(handler, i)
	}
}

func (eb *EventBus) listenToChannel(channel Channel) {
	log := eb.log.Function("listenToChannel")

	ctx, cancel := context.WithCancel(eb.ctx)
	defer cancel()

	log.Info("listening to channel", "channel", channel)

	err := eb.client.Receive(
		ctx,
		eb.client.B().Subscribe().Channel(channel.String()).Build(),
		func(msg valkey.PubSubMessage) {
			var event RequestEvent
			if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
				log.Er("failed to unmarshal event", err, "channel", channel)
				return
			}

			eb.notifyLocalHandlers(channel, event)
		},
	)
	if err != nil && ctx.Err() == nil {
		log.Er("channel subscription ended", err, "channel", channel)
	}
}

func (eb *EventBus) Close() error {
	eb.cancel()
	eb.log.Info("event bus closed")
	return nil
}
