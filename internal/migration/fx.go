package migration

import (
	ledgerdomain "github.com/smallbiznis/geotoll/internal/ledger/domain"
	ruledomain "github.com/smallbiznis/geotoll/internal/rule/domain"
	userdomain "github.com/smallbiznis/geotoll/internal/user/domain"
	zonedomain "github.com/smallbiznis/geotoll/internal/zone/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB) error {
		// The versioned SQL migrations target postgres. Other
		// dialects (sqlite for local development, mysql) get their
		// schema from the models directly.
		if conn.Dialector.Name() != "postgres" {
			return conn.AutoMigrate(
				&userdomain.User{},
				&zonedomain.Zone{},
				&ruledomain.Rule{},
				&ledgerdomain.Transaction{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
