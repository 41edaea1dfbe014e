package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/geotoll/internal/ledger/domain"
	"github.com/smallbiznis/geotoll/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Append(ctx context.Context, tx *gorm.DB, transaction *domain.Transaction) error {
	return tx.WithContext(ctx).Exec(
		`INSERT INTO transactions (id, user_id, zone_id, amount, rate_unit, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		transaction.ID,
		transaction.UserID,
		transaction.ZoneID,
		transaction.Amount,
		transaction.RateUnit,
		transaction.CreatedAt,
	).Error
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID, page pagination.Pagination) ([]*domain.Transaction, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Where("user_id = ?", userID)

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
		createdAt, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
		cursorID, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
		stmt = stmt.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			createdAt,
			createdAt,
			cursorID,
		)
	}

	limit := page.PageSize
	if limit <= 0 {
		limit = 50
	}

	var transactions []*domain.Transaction
	err := stmt.
		Order("created_at desc, id desc").
		Limit(limit + 1).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}
