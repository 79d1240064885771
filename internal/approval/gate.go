// Package approval decides whether a reacting user may trigger a relay.
package approval

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"reacji/internal/core"
)

type Gate struct {
	Logger    *slog.Logger
	Allowlist core.AllowListResolver
}

func (g *Gate) Init(context.Context) error {
	g.Logger = g.Logger.With("component", "approval.Gate")
	return nil
}

// IsApproved checks the user's profile email against the allow-list. An empty
// allow-list approves everyone. A failing profile lookup is an error, never a
// rejection.
func (g *Gate) IsApproved(ctx context.Context, client core.ChatClient, userID string) (bool, error) {
	list, err := g.Allowlist.Resolve(ctx)
	if err != nil {
		return false, err
	}

	if list.Empty() {
		return true, nil
	}

	email, err := client.UserEmail(ctx, userID)
	if err != nil {
		return false, err
	}

	_, domain, _ := strings.Cut(email, "@")

	return lo.Contains(list.Emails, email) || lo.Contains(list.Domains, domain), nil
}
