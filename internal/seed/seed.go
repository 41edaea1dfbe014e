package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	ruledomain "github.com/smallbiznis/geotoll/internal/rule/domain"
	userdomain "github.com/smallbiznis/geotoll/internal/user/domain"
	zonedomain "github.com/smallbiznis/geotoll/internal/zone/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@geotoll.local"

	demoZoneName = "Downtown"
)

// EnsureAdminUser seeds the default admin account for startup
// bootstrap. Idempotent.
func EnsureAdminUser(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user userdomain.User
		err := tx.WithContext(ctx).
			Where("username = ?", defaultAdminUsername).
			First(&user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		user = userdomain.User{
			ID:        node.Generate(),
			Username:  defaultAdminUsername,
			Email:     defaultAdminEmail,
			Role:      "admin",
			Balance:   decimal.Zero,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.WithContext(ctx).Create(&user).Error
	})
}

// EnsureDemoData seeds a demo zone and an hourly charging rule so a
// fresh install has something to resolve against. Idempotent.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zone zonedomain.Zone
		err := tx.WithContext(ctx).
			Where("name = ?", demoZoneName).
			First(&zone).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		lat, lng, radius := 52.52, 13.405, 500.0
		zone = zonedomain.Zone{
			ID:           node.Generate(),
			Name:         demoZoneName,
			Country:      "DE",
			AddressName:  "Alexanderplatz",
			CenterLat:    &lat,
			CenterLng:    &lng,
			RadiusMeters: &radius,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.WithContext(ctx).Create(&zone).Error; err != nil {
			return err
		}

		rule := ruledomain.Rule{
			ID:        node.Generate(),
			ZoneID:    zone.ID,
			StartTime: "08:00:00",
			EndTime:   "20:00:00",
			Weekdays: datatypes.NewJSONSlice([]string{
				"Monday", "Tuesday", "Wednesday", "Thursday", "Friday",
			}),
			Months: datatypes.NewJSONSlice([]string{
				"January", "February", "March", "April", "May", "June",
				"July", "August", "September", "October", "November", "December",
			}),
			Years:     datatypes.NewJSONSlice([]int{now.Year(), now.Year() + 1}),
			Amount:    decimal.RequireFromString("2.50"),
			RateUnit:  ruledomain.RateUnitHour,
			Enabled:   true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.WithContext(ctx).Omit("Zone").Create(&rule).Error
	})
}
