package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/geotoll/internal/clock"
	"github.com/smallbiznis/geotoll/internal/config"
	"github.com/smallbiznis/geotoll/internal/migration"
	"github.com/smallbiznis/geotoll/internal/observability"
	"github.com/smallbiznis/geotoll/internal/seed"
	"github.com/smallbiznis/geotoll/internal/server"
	"github.com/smallbiznis/geotoll/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		// Schema and bootstrap data before the server accepts traffic
		migration.Module,
		seed.Module,

		// HTTP surface and domain modules
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
