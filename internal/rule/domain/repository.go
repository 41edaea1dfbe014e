package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, rule *Rule) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Rule, error)
	List(ctx context.Context, db *gorm.DB) ([]*Rule, error)

	// ListEnabled returns enabled rules with their zones preloaded,
	// ordered by ascending rule ID. That order is the selector's
	// priority order: first match wins.
	ListEnabled(ctx context.Context, db *gorm.DB) ([]*Rule, error)

	Update(ctx context.Context, db *gorm.DB, rule *Rule) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	SetEnabled(ctx context.Context, db *gorm.DB, id snowflake.ID, enabled bool) (int64, error)
}
