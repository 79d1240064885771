// Package socket consumes reaction events over the platform's Socket Mode:
// a websocket handed out by apps.connections.open, carrying the same event
// payloads as the HTTP webhook, each acked by envelope id.
package socket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zhulik/pips"
	"github.com/zhulik/pips/apply"

	"reacji/internal/chat"
	"reacji/internal/core"
	"reacji/pkg/retry"
)

var (
	envelopesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reacji_socket_envelopes_total",
		Help: "The total number of Socket Mode envelopes received",
	}, []string{"type"})
)

// Envelope is one Socket Mode frame.
type Envelope struct {
	Type       string          `json:"type"`
	EnvelopeID string          `json:"envelope_id"`
	Payload    json.RawMessage `json:"payload"`
}

type ack struct {
	EnvelopeID string `json:"envelope_id"`
}

// eventsAPIPayload is the payload of an events_api envelope; same envelope
// shape the HTTP endpoint decodes, minus the base64 wrapper.
type eventsAPIPayload struct {
	Event *struct {
		Type     string `json:"type"`
		User     string `json:"user"`
		Reaction string `json:"reaction"`
		Item     *struct {
			Channel   string `json:"channel"`
			Timestamp string `json:"ts"`
		} `json:"item"`
	} `json:"event"`
}

type Subscriber struct {
	Logger   *slog.Logger
	Clients  *chat.Factory
	Ingestor core.EventIngestor

	ch chan pips.D[*Envelope]
}

func (s *Subscriber) Init(context.Context) error {
	s.Logger = s.Logger.With("component", "socket.Subscriber")
	s.ch = make(chan pips.D[*Envelope])
	return nil
}

func (s *Subscriber) Run(ctx context.Context) error {
	go s.consume(ctx)

	return pips.New[*Envelope, any]().
		Then(apply.Each(countEnvelope)).
		Then(apply.Map(s.handle)).
		Run(ctx, s.ch).
		Wait(ctx)
}

// consume keeps one websocket connection alive, reconnecting until the
// context is cancelled. Received events_api envelopes are acked immediately
// and pushed downstream.
func (s *Subscriber) consume(ctx context.Context) {
	defer close(s.ch)

	err := retry.WrapWithRetry(func() error {
		err := s.connectAndRead(ctx)
		if err != nil {
			s.Logger.Error("socket connection failed, reconnecting", "error", err)
		}
		return err
	}, func(_ error, _ int) bool {
		return ctx.Err() == nil
	}, time.Second)()

	if err != nil && !errors.Is(err, context.Canceled) {
		s.Logger.Error("socket consumer stopped", "error", err)
	}
}

func (s *Subscriber) connectAndRead(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	client, err := s.Clients.AppClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	connection, err := client.ConnectionsOpen(ctx)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, connection.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	s.Logger.Info("socket connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.Logger.Warn("discarding unparsable frame", "error", err)
			continue
		}

		switch env.Type {
		case "hello":
			s.Logger.Debug("socket hello")
		case "disconnect":
			// The platform asks for a reconnect before it drops us.
			return nil
		case "events_api":
			if err := conn.WriteJSON(ack{EnvelopeID: env.EnvelopeID}); err != nil {
				return err
			}
			select {
			case s.ch <- pips.NewD(&env):
			case <-ctx.Done():
				return ctx.Err()
			}
		default:
			s.Logger.Debug("ignoring envelope", "type", env.Type)
		}
	}
}

func (s *Subscriber) handle(ctx context.Context, env *Envelope) (any, error) {
	event, ok := reactionEvent(env)
	if !ok {
		return nil, nil
	}

	resp, err := s.Ingestor.IngestEvent(ctx, event)
	if err != nil {
		return nil, err
	}

	s.Logger.Debug("processed envelope", "id", env.EnvelopeID, "status", resp.StatusCode)
	return resp, nil
}

// reactionEvent extracts a reaction_added event from an events_api envelope.
// Anything else is skipped.
func reactionEvent(env *Envelope) (core.ReactionEvent, bool) {
	var payload eventsAPIPayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		return core.ReactionEvent{}, false
	}

	if payload.Event == nil || payload.Event.Item == nil || payload.Event.Type != "reaction_added" {
		return core.ReactionEvent{}, false
	}

	return core.ReactionEvent{
		UserID:    payload.Event.User,
		Emoji:     payload.Event.Reaction,
		ChannelID: payload.Event.Item.Channel,
		Timestamp: payload.Event.Item.Timestamp,
	}, true
}

func countEnvelope(_ context.Context, env *Envelope) error {
	envelopesReceived.WithLabelValues(env.Type).Inc()
	return nil
}
