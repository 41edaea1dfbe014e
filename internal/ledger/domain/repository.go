package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/geotoll/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	// Append inserts a ledger row. It is the only write this
	// repository exposes; the ledger is append-only.
	Append(ctx context.Context, tx *gorm.DB, transaction *Transaction) error

	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID, page pagination.Pagination) ([]*Transaction, error)
}
