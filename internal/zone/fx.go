package zone

import (
	"github.com/smallbiznis/geotoll/internal/zone/repository"
	"github.com/smallbiznis/geotoll/internal/zone/service"
	"go.uber.org/fx"
)

var Module = fx.Module("zone.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
