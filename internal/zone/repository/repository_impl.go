package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/geotoll/internal/zone/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, zone *domain.Zone) error {
	return db.WithContext(ctx).Create(zone).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Zone, error) {
	var zone domain.Zone
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&zone).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Zone, error) {
	var zones []*domain.Zone
	err := db.WithContext(ctx).
		Order("id asc").
		Find(&zones).Error
	if err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, zone *domain.Zone) error {
	return db.WithContext(ctx).Save(zone).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Zone{}).Error
}
