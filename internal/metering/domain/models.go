package domain

import (
	"errors"

	ledgerdomain "github.com/smallbiznis/geotoll/internal/ledger/domain"
	zonedomain "github.com/smallbiznis/geotoll/internal/zone/domain"
	"github.com/shopspring/decimal"
)

// Outcome is the result class of a billing resolve call. Only
// "charged" moves money; the rest are normal, mutation-free outcomes
// except "first_check_in", which seeds the watermark.
type Outcome string

const (
	// OutcomeFirstCheckIn seeds the watermark for a user that has
	// never been observed; no balance change, no ledger row. Without
	// this seeding, the first observation would bill an unbounded
	// backlog.
	OutcomeFirstCheckIn Outcome = "first_check_in"

	// OutcomeNotDue means a rule matched but the rate interval has
	// not elapsed since the watermark.
	OutcomeNotDue Outcome = "not_due"

	// OutcomeCharged means exactly one rate unit was debited.
	OutcomeCharged Outcome = "charged"

	// OutcomeNoRuleMatched means no enabled rule applied at this
	// location and instant. A normal outcome, not an error.
	OutcomeNoRuleMatched Outcome = "no_rule_matched"
)

type ResolveRequest struct {
	UserID    string  `json:"user_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Timestamp is an RFC3339 instant. Empty means "now" per the
	// engine clock.
	Timestamp string `json:"timestamp"`
}

type ResolveResponse struct {
	Outcome     Outcome                   `json:"outcome"`
	Balance     decimal.Decimal           `json:"balance"`
	Zone        *zonedomain.Zone          `json:"zone,omitempty"`
	Transaction *ledgerdomain.Transaction `json:"transaction,omitempty"`
}

type LookupRuleRequest struct {
	Latitude  float64 `json:"latitude" form:"latitude"`
	Longitude float64 `json:"longitude" form:"longitude"`
	Timestamp string  `json:"timestamp" form:"timestamp"`
}

var (
	ErrInvalidUser        = errors.New("invalid_user_id")
	ErrInvalidCoordinates = errors.New("invalid_coordinates")
	ErrInvalidTimestamp   = errors.New("invalid_timestamp")

	// ErrClockSkew is returned when the charge-decision timestamp
	// precedes the stored watermark. The call takes no action; the
	// condition is surfaced for investigation, never silently clamped.
	ErrClockSkew = errors.New("clock_skew")
)
