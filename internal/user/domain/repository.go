package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	List(ctx context.Context, db *gorm.DB) ([]*User, error)

	// FindByIDForUpdate reads the user row under an exclusive row lock.
	// It must be called inside a transaction; the lock is held until
	// that transaction commits or rolls back.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*User, error)

	// UpdateWatermark sets last_check_in_at without touching the balance.
	UpdateWatermark(ctx context.Context, tx *gorm.DB, id snowflake.ID, at time.Time) error

	// UpdateBalanceAndWatermark applies the post-charge state.
	UpdateBalanceAndWatermark(ctx context.Context, tx *gorm.DB, id snowflake.ID, balance decimal.Decimal, at time.Time) error
}
