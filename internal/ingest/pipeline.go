// Package ingest is the event ingestion pipeline: decode, deduplicate, gate
// on approval, resolve the routing rule and relay a permalink.
package ingest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"reacji/internal/config"
	"reacji/internal/core"
	"reacji/pkg/slackapi"
)

var (
	eventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reacji_events_processed_total",
		Help: "The total number of processed reaction events",
	}, []string{"outcome"})
)

const (
	outcomeInvalid     = "invalid"
	outcomeHandshake   = "handshake"
	outcomeDuplicate   = "duplicate"
	outcomeUnapproved  = "unapproved"
	outcomeNoRule      = "no_rule"
	outcomeNoPermalink = "no_permalink"
	outcomeRelayed     = "relayed"
)

// envelope is the decoded webhook body. Every nested field is a pointer so
// absence is detected explicitly instead of crashing on a zero value.
type envelope struct {
	Challenge string        `json:"challenge"`
	Event     *eventPayload `json:"event"`
}

type eventPayload struct {
	User     string     `json:"user"`
	Reaction string     `json:"reaction"`
	Item     *eventItem `json:"item"`
}

type eventItem struct {
	Channel   string `json:"channel"`
	Timestamp string `json:"ts"`
}

type Pipeline struct {
	Logger  *slog.Logger
	Config  *config.Config
	Dedupe  core.DedupeStore
	Rules   core.RuleStore
	Relays  core.RelayLog
	Clients core.ChatClientFactory
	Gate    core.ApprovalGate

	validate *validator.Validate
}

func (p *Pipeline) Init(context.Context) error {
	p.Logger = p.Logger.With("component", "ingest.Pipeline")
	p.validate = validator.New()
	return nil
}

// Ingest handles one raw webhook delivery: a base64-encoded JSON body. All
// benign terminal states (duplicate, unapproved, no rule, unresolvable
// permalink) converge on 200; only malformed input is a 400 and only
// infrastructure failure surfaces as an error.
func (p *Pipeline) Ingest(ctx context.Context, rawBody []byte) (core.Response, error) {
	if len(rawBody) == 0 {
		return badRequest(), nil
	}

	jsonBody, err := base64.StdEncoding.DecodeString(string(rawBody))
	if err != nil {
		return core.Response{}, fmt.Errorf("decoding body: %w", err)
	}

	var body envelope
	if err := json.Unmarshal(jsonBody, &body); err != nil {
		return core.Response{}, fmt.Errorf("parsing body: %w", err)
	}

	// One-time platform verification handshake.
	if body.Challenge != "" {
		eventsProcessed.WithLabelValues(outcomeHandshake).Inc()
		return core.Response{StatusCode: http.StatusOK, Body: body.Challenge}, nil
	}

	if body.Event == nil || body.Event.Item == nil {
		return badRequest(), nil
	}

	event := core.ReactionEvent{
		UserID:    body.Event.User,
		Emoji:     body.Event.Reaction,
		ChannelID: body.Event.Item.Channel,
		Timestamp: body.Event.Item.Timestamp,
	}

	return p.IngestEvent(ctx, event)
}

// IngestEvent handles an already decoded reaction event. The Socket Mode
// subscriber enters here directly.
func (p *Pipeline) IngestEvent(ctx context.Context, event core.ReactionEvent) (core.Response, error) {
	if err := p.validate.Struct(event); err != nil {
		eventsProcessed.WithLabelValues(outcomeInvalid).Inc()
		return badRequest(), nil
	}

	logger := p.Logger.With("emoji", event.Emoji, "channel", event.ChannelID, "ts", event.Timestamp)

	fingerprint := event.Fingerprint()
	expiresAt := time.Now().Add(p.Config.DedupeTTL).Unix()

	err := p.Dedupe.InsertIfAbsent(ctx, fingerprint, expiresAt)
	switch {
	case err == nil:
		logger.Debug("first sighting of fingerprint")
	case errors.Is(err, core.ErrAlreadyExists):
		logger.Debug("duplicate delivery, returning early")
		eventsProcessed.WithLabelValues(outcomeDuplicate).Inc()
		return success(), nil
	default:
		// The insert may have partially landed; clear it so a retry is not
		// suppressed by a record nobody acted on.
		if delErr := p.Dedupe.Delete(ctx, fingerprint); delErr != nil {
			logger.Warn("failed to roll back dedupe record", "error", delErr)
		}
		return core.Response{}, fmt.Errorf("deduplicating event: %w", err)
	}

	// From here on the dedupe record is retained even on failure, so a
	// retried delivery of the same event is dropped as a duplicate.
	client, err := p.Clients.Client(ctx)
	if err != nil {
		return core.Response{}, fmt.Errorf("building chat client: %w", err)
	}

	approved, err := p.Gate.IsApproved(ctx, client, event.UserID)
	if err != nil {
		return core.Response{}, fmt.Errorf("checking approval: %w", err)
	}
	if !approved {
		// Silently dropped so rule existence is not leaked to unapproved users.
		logger.Info("user not approved, dropping event", "user", event.UserID)
		eventsProcessed.WithLabelValues(outcomeUnapproved).Inc()
		return success(), nil
	}

	rule, err := p.Rules.Get(ctx, event.Emoji)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			logger.Debug("no rule for emoji")
			eventsProcessed.WithLabelValues(outcomeNoRule).Inc()
			return success(), nil
		}
		return core.Response{}, fmt.Errorf("looking up rule: %w", err)
	}

	permalink, err := client.Permalink(ctx, event.ChannelID, event.Timestamp)
	if err != nil {
		var apiErr *slackapi.APIError
		if errors.As(err, &apiErr) {
			logger.Info("permalink not resolvable, skipping relay", "reason", apiErr.Reason)
			eventsProcessed.WithLabelValues(outcomeNoPermalink).Inc()
			return success(), nil
		}
		return core.Response{}, fmt.Errorf("resolving permalink: %w", err)
	}

	if err := client.PostMessage(ctx, rule.ChannelID, permalink); err != nil {
		return core.Response{}, fmt.Errorf("posting relay: %w", err)
	}

	if err := p.Relays.Record(ctx, core.Relay{
		Emoji:                event.Emoji,
		SourceChannelID:      event.ChannelID,
		SourceTimestamp:      event.Timestamp,
		DestinationChannelID: rule.ChannelID,
		Permalink:            permalink,
	}); err != nil {
		// The relay was delivered; a missing audit row is not worth a retry
		// storm.
		logger.Warn("failed to record relay", "error", err)
	}

	logger.Info("relayed message", "destination", rule.ChannelID)
	eventsProcessed.WithLabelValues(outcomeRelayed).Inc()

	return success(), nil
}

func success() core.Response {
	return core.Response{StatusCode: http.StatusOK, Body: "success"}
}

func badRequest() core.Response {
	return core.Response{StatusCode: http.StatusBadRequest, Body: "400 bad request"}
}
