// Package relays keeps an audit trail of delivered relays.
package relays

import (
	"context"
	"log/slog"

	"reacji/internal/core"
)

type Repository struct {
	Logger *slog.Logger
	DB     core.DB
}

func (r *Repository) Init(context.Context) error {
	r.Logger = r.Logger.With("component", "relays.Repository")
	return nil
}

func (r *Repository) Record(ctx context.Context, relay core.Relay) error {
	return r.DB.
		Model(&core.Relay{}).
		WithContext(ctx).
		Create(&relay).Error
}
