package seed

import (
	"github.com/smallbiznis/geotoll/internal/config"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("seed",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if err := EnsureAdminUser(conn); err != nil {
			return err
		}
		if cfg.SeedDemoData {
			return EnsureDemoData(conn)
		}
		return nil
	}),
)
