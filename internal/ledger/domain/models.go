package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Transaction is one immutable ledger row, appended exactly once per
// successful charge. Rows are never updated or deleted; corrections
// would be new rows.
type Transaction struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID snowflake.ID `gorm:"not null;index:ix_transactions_user_created,priority:1" json:"user_id"`
	ZoneID snowflake.ID `gorm:"not null;index" json:"zone_id"`

	Amount   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	RateUnit string          `gorm:"type:text;not null" json:"rate_unit"`

	CreatedAt time.Time `gorm:"not null;index:ix_transactions_user_created,priority:2" json:"created_at"`
}

// TableName sets the database table name.
func (Transaction) TableName() string { return "transactions" }
