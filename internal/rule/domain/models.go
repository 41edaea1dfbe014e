package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	zonedomain "github.com/smallbiznis/geotoll/internal/zone/domain"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// RateUnit is the billing interval granularity.
type RateUnit string

const (
	RateUnitSecond RateUnit = "second"
	RateUnitMinute RateUnit = "minute"
	RateUnitHour   RateUnit = "hour"
	RateUnitDay    RateUnit = "day"
	RateUnitWeek   RateUnit = "week"
	RateUnitMonth  RateUnit = "month"
)

// Threshold maps the rate unit to the elapsed time that must pass
// before the next charge is due. "month" is a fixed 30-day
// approximation, not calendar-month arithmetic; callers must not
// "fix" this without an explicit billing policy change.
func (u RateUnit) Threshold() (time.Duration, bool) {
	switch u {
	case RateUnitSecond:
		return time.Second, true
	case RateUnitMinute:
		return time.Minute, true
	case RateUnitHour:
		return time.Hour, true
	case RateUnitDay:
		return 24 * time.Hour, true
	case RateUnitWeek:
		return 7 * 24 * time.Hour, true
	case RateUnitMonth:
		return 30 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// Rule governs when and how much to charge inside a zone.
type Rule struct {
	ID     snowflake.ID     `gorm:"primaryKey" json:"id"`
	ZoneID snowflake.ID     `gorm:"not null;index" json:"zone_id"`
	Zone   *zonedomain.Zone `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`

	// Wall-clock window bounds in "HH:MM:SS", no date. StartTime may
	// be later than EndTime, in which case the window wraps midnight.
	StartTime string `gorm:"type:text;not null" json:"start_time"`
	EndTime   string `gorm:"type:text;not null" json:"end_time"`

	Weekdays datatypes.JSONSlice[string] `gorm:"type:json" json:"weekdays"`
	Months   datatypes.JSONSlice[string] `gorm:"type:json" json:"months"`
	Years    datatypes.JSONSlice[int]    `gorm:"type:json" json:"years"`

	Amount   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	RateUnit RateUnit        `gorm:"type:text;not null" json:"rate_unit"`
	// No gorm default tag: with one, gorm drops a zero-valued
	// Enabled from the INSERT and the column falls back to the DB
	// default, silently enabling rules created disabled.
	Enabled bool `gorm:"not null" json:"enabled"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Rule) TableName() string { return "charging_rules" }

// Validate enforces rule invariants before persistence.
func (r *Rule) Validate() error {
	if r.ZoneID == 0 {
		return ErrInvalidZone
	}
	if _, err := parseTimeOfDay(r.StartTime); err != nil {
		return ErrInvalidTimeWindow
	}
	if _, err := parseTimeOfDay(r.EndTime); err != nil {
		return ErrInvalidTimeWindow
	}
	if r.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if _, ok := r.RateUnit.Threshold(); !ok {
		return ErrInvalidRateUnit
	}
	return nil
}
