package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/geotoll/pkg/db/pagination"
)

type ListTransactionsRequest struct {
	UserID    string `form:"user_id"`
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

type ListTransactionsResponse struct {
	pagination.PageInfo
	Transactions []Transaction `json:"transactions"`
}

type Service interface {
	List(ctx context.Context, req ListTransactionsRequest) (ListTransactionsResponse, error)
}

var (
	ErrInvalidUser      = errors.New("invalid_transaction_user")
	ErrInvalidPageToken = errors.New("invalid_page_token")
)
