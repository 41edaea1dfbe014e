package domain

import (
	"context"
	"errors"
)

type CreateRuleRequest struct {
	ZoneID    string   `json:"zone_id"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Weekdays  []string `json:"weekdays"`
	Months    []string `json:"months"`
	Years     []int    `json:"years"`
	Amount    string   `json:"amount"`
	RateUnit  string   `json:"rate_unit"`
	Enabled   *bool    `json:"enabled"`
}

type UpdateRuleRequest struct {
	ID string `json:"-"`
	CreateRuleRequest
}

type Service interface {
	Create(ctx context.Context, req CreateRuleRequest) (Rule, error)
	List(ctx context.Context) ([]Rule, error)
	GetByID(ctx context.Context, id string) (Rule, error)
	Update(ctx context.Context, req UpdateRuleRequest) (Rule, error)
	Delete(ctx context.Context, id string) error

	// SetEnabled flips the enabled flag only. It has no billing side
	// effect; the change takes effect on the next resolve call.
	SetEnabled(ctx context.Context, id string, enabled bool) (Rule, error)
}

var (
	ErrInvalidID         = errors.New("invalid_rule_id")
	ErrInvalidZone       = errors.New("invalid_rule_zone")
	ErrInvalidTimeWindow = errors.New("invalid_rule_time_window")
	ErrInvalidAmount     = errors.New("invalid_rule_amount")
	ErrInvalidRateUnit   = errors.New("invalid_rule_rate_unit")
	ErrNotFound          = errors.New("rule_not_found")
)
