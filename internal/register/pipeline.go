// Package register handles the slash command that maps an emoji to a
// destination channel.
package register

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"

	"reacji/internal/config"
	"reacji/internal/core"
)

var (
	rulesRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reacji_rules_registered_total",
		Help: "The total number of rule registration attempts",
	}, []string{"status"})
)

const usage = "usage: /reacji <emoji> <channel>"

type Pipeline struct {
	Logger  *slog.Logger
	Config  *config.Config
	Rules   core.RuleStore
	Clients core.ChatClientFactory
}

func (p *Pipeline) Init(context.Context) error {
	p.Logger = p.Logger.With("component", "register.Pipeline")
	return nil
}

// Register handles one form-encoded slash-command payload. A duplicate rule
// is a 400 with an explanation; an unresolvable channel name is a 404.
func (p *Pipeline) Register(ctx context.Context, rawBody []byte) (core.Response, error) {
	if len(rawBody) == 0 {
		return core.Response{StatusCode: http.StatusBadRequest, Body: "400 bad request"}, nil
	}

	values, err := url.ParseQuery(string(rawBody))
	if err != nil {
		return core.Response{}, fmt.Errorf("parsing command payload: %w", err)
	}

	// Copy-pasted commands tend to carry embedded newlines.
	for key, vals := range values {
		for i, v := range vals {
			vals[i] = strings.ReplaceAll(v, "\n", "")
		}
		values[key] = vals
	}

	text := values.Get("text")

	emoji, channelName, ok := parseCommand(text)
	if !ok {
		rulesRegistered.WithLabelValues("invalid").Inc()
		return core.Response{StatusCode: http.StatusBadRequest, Body: usage}, nil
	}

	client, err := p.Clients.Client(ctx)
	if err != nil {
		return core.Response{}, fmt.Errorf("building chat client: %w", err)
	}

	channels, err := client.Channels(ctx)
	if err != nil {
		return core.Response{}, fmt.Errorf("listing channels: %w", err)
	}

	channel, found := lo.Find(channels, func(ch core.Channel) bool {
		return ch.Name == channelName
	})
	if !found {
		p.Logger.Info("no matching channel", "name", channelName)
		rulesRegistered.WithLabelValues("no_channel").Inc()
		return core.Response{
			StatusCode: http.StatusNotFound,
			Body:       fmt.Sprintf("no matching channel named %q", channelName),
		}, nil
	}

	err = p.Rules.InsertIfAbsent(ctx, core.Rule{Emoji: emoji, ChannelID: channel.ID})
	if err != nil {
		if errors.Is(err, core.ErrAlreadyExists) {
			rulesRegistered.WithLabelValues("conflict").Inc()
			return core.Response{
				StatusCode: http.StatusBadRequest,
				Body:       fmt.Sprintf("a rule already exists for :%s:", emoji),
			}, nil
		}
		return core.Response{}, fmt.Errorf("inserting rule: %w", err)
	}

	p.Logger.Info("registered rule", "emoji", emoji, "channel", channel.ID)
	rulesRegistered.WithLabelValues("registered").Inc()

	return core.Response{
		StatusCode: http.StatusOK,
		Body:       fmt.Sprintf("reactions with :%s: will be relayed to #%s", emoji, channel.Name),
	}, nil
}

// parseCommand splits "<emoji> <channel-token>" on the first space. The
// channel token is either a bare display name or a platform link token
// ("<#C123|general>"), in which case the display name between "|" and ">"
// wins, independent of the embedded id.
func parseCommand(text string) (emoji, channelName string, ok bool) {
	emoji, token, found := strings.Cut(strings.TrimSpace(text), " ")
	if !found {
		return "", "", false
	}

	emoji = strings.Trim(emoji, ":")
	token = strings.TrimSpace(token)
	if emoji == "" || token == "" {
		return "", "", false
	}

	if strings.HasPrefix(token, "<#") && strings.HasSuffix(token, ">") {
		if _, name, found := strings.Cut(token, "|"); found {
			return emoji, strings.TrimSuffix(name, ">"), true
		}
	}

	return emoji, token, true
}
