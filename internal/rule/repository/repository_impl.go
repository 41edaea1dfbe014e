package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/geotoll/internal/rule/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rule *domain.Rule) error {
	return db.WithContext(ctx).Omit("Zone").Create(rule).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Rule, error) {
	var rule domain.Rule
	err := db.WithContext(ctx).
		Preload("Zone").
		Where("id = ?", id).
		Take(&rule).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Rule, error) {
	var rules []*domain.Rule
	err := db.WithContext(ctx).
		Preload("Zone").
		Order("id asc").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repo) ListEnabled(ctx context.Context, db *gorm.DB) ([]*domain.Rule, error) {
	var rules []*domain.Rule
	err := db.WithContext(ctx).
		Preload("Zone").
		Where("enabled = ?", true).
		Order("id asc").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, rule *domain.Rule) error {
	return db.WithContext(ctx).Omit("Zone").Save(rule).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Rule{}).Error
}

func (r *repo) SetEnabled(ctx context.Context, db *gorm.DB, id snowflake.ID, enabled bool) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE charging_rules SET enabled = ?, updated_at = ? WHERE id = ?`,
		enabled,
		time.Now().UTC(),
		id,
	)
	return result.RowsAffected, result.Error
}
