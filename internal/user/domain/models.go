package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// User carries the billing state the engine mutates: the balance and
// the last check-in watermark. Balance and LastCheckInAt are written
// exclusively by the metering engine inside its transaction boundary.
type User struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	Username string       `gorm:"uniqueIndex;not null" json:"username"`
	Email    string       `gorm:"uniqueIndex;not null" json:"email"`
	Role     string       `gorm:"type:text;not null;default:user" json:"role"`

	// Balance has no enforced floor; it may go negative. Whether an
	// insufficient balance should block a charge is an open policy
	// decision, so the engine keeps the original no-limit behavior.
	Balance decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"balance"`

	// LastCheckInAt is the metering watermark: the instant of the last
	// charge decision. Null means the user has never been observed in
	// a billable zone.
	LastCheckInAt *time.Time `gorm:"column:last_check_in_at" json:"last_check_in_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
