package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/geotoll/internal/ledger/domain"
	"github.com/smallbiznis/geotoll/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("ledger.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListTransactionsRequest) (domain.ListTransactionsResponse, error) {
	userID, err := snowflake.ParseString(req.UserID)
	if err != nil {
		return domain.ListTransactionsResponse{}, domain.ErrInvalidUser
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListByUser(ctx, s.db, userID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListTransactionsResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(transaction *domain.Transaction) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        transaction.ID.String(),
			CreatedAt: transaction.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	transactions := make([]domain.Transaction, 0, len(items))
	for _, item := range items {
		if item != nil {
			transactions = append(transactions, *item)
		}
	}

	return domain.ListTransactionsResponse{
		PageInfo:     *pageInfo,
		Transactions: transactions,
	}, nil
}
