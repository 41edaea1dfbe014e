package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"time"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type BalanceResponse struct {
	UserID        string          `json:"user_id"`
	Balance       decimal.Decimal `json:"balance"`
	LastCheckInAt *time.Time      `json:"last_check_in_at,omitempty"`
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context) ([]User, error)
	GetBalance(ctx context.Context, id string) (BalanceResponse, error)
}

var (
	ErrInvalidID       = errors.New("invalid_user_id")
	ErrInvalidUsername = errors.New("invalid_username")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrUserExists      = errors.New("user_exists")
	ErrNotFound        = errors.New("user_not_found")
)
