// Package allowlist fetches and parses the approval policy: one
// comma-separated string of email domains and exact addresses.
package allowlist

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"reacji/internal/config"
	"reacji/internal/core"
)

type Resolver struct {
	Logger  *slog.Logger
	Config  *config.Config
	Secrets core.SecretResolver
}

func (r *Resolver) Init(context.Context) error {
	r.Logger = r.Logger.With("component", "allowlist.Resolver")
	return nil
}

// Resolve parses the configured allow-list parameter. A token containing "@"
// is an exact email, anything else is a domain. An absent or empty parameter
// yields an empty allow-list, which downstream means everyone is approved.
func (r *Resolver) Resolve(ctx context.Context) (core.AllowList, error) {
	raw, err := r.Secrets.Get(ctx, r.Config.AllowlistParam, false)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.AllowList{}, nil
		}
		return core.AllowList{}, err
	}

	tokens := lo.Compact(lo.Map(strings.Split(raw, ","), func(token string, _ int) string {
		return strings.TrimSpace(token)
	}))

	emails := lo.Filter(tokens, func(token string, _ int) bool {
		return strings.Contains(token, "@")
	})
	domains := lo.Reject(tokens, func(token string, _ int) bool {
		return strings.Contains(token, "@")
	})

	return core.AllowList{
		Domains: domains,
		Emails:  emails,
	}, nil
}
