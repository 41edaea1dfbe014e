package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, zone *Zone) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Zone, error)
	List(ctx context.Context, db *gorm.DB) ([]*Zone, error)
	Update(ctx context.Context, db *gorm.DB, zone *Zone) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
