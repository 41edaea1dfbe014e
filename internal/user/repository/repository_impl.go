package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/geotoll/internal/user/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.User, error) {
	var users []*domain.User
	err := db.WithContext(ctx).
		Order("id asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*domain.User, error) {
	stmt := tx.WithContext(ctx)
	// SQLite has no row-level locks; its single writer already
	// serializes the read-decide-write sequence.
	if tx.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var user domain.User
	err := stmt.
		Where("id = ?", id).
		Take(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repo) UpdateWatermark(ctx context.Context, tx *gorm.DB, id snowflake.ID, at time.Time) error {
	return tx.WithContext(ctx).Exec(
		`UPDATE users SET last_check_in_at = ?, updated_at = ? WHERE id = ?`,
		at,
		at,
		id,
	).Error
}

func (r *repo) UpdateBalanceAndWatermark(ctx context.Context, tx *gorm.DB, id snowflake.ID, balance decimal.Decimal, at time.Time) error {
	return tx.WithContext(ctx).Exec(
		`UPDATE users SET balance = ?, last_check_in_at = ?, updated_at = ? WHERE id = ?`,
		balance,
		at,
		at,
		id,
	).Error
}
