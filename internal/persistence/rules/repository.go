// Package rules persists emoji routing rules. The conditional insert relies
// on the table's primary key: ON CONFLICT DO NOTHING admits exactly one
// winner among racing writers.
package rules

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reacji/internal/core"
)

type Repository struct {
	Logger *slog.Logger
	DB     core.DB
}

func (r *Repository) Init(context.Context) error {
	r.Logger = r.Logger.With("component", "rules.Repository")
	return nil
}

// InsertIfAbsent creates the rule. Returns core.ErrAlreadyExists when a rule
// for the emoji is already registered; the existing row is left untouched.
func (r *Repository) InsertIfAbsent(ctx context.Context, rule core.Rule) error {
	res := r.DB.
		Model(&core.Rule{}).
		WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rule)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return core.ErrAlreadyExists
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, emoji string) (core.Rule, error) {
	var rule core.Rule

	err := r.DB.
		Model(&core.Rule{}).
		WithContext(ctx).
		Where("emoji = ?", emoji).
		Take(&rule).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Rule{}, core.ErrNotFound
		}
		return core.Rule{}, err
	}
	return rule, nil
}
