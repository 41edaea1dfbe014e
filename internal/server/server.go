package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/geotoll/internal/config"
	"github.com/smallbiznis/geotoll/internal/ledger"
	ledgerdomain "github.com/smallbiznis/geotoll/internal/ledger/domain"
	"github.com/smallbiznis/geotoll/internal/metering"
	meteringdomain "github.com/smallbiznis/geotoll/internal/metering/domain"
	"github.com/smallbiznis/geotoll/internal/observability"
	obsmiddleware "github.com/smallbiznis/geotoll/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/geotoll/internal/observability/metrics"
	"github.com/smallbiznis/geotoll/internal/ratelimit"
	"github.com/smallbiznis/geotoll/internal/rule"
	ruledomain "github.com/smallbiznis/geotoll/internal/rule/domain"
	"github.com/smallbiznis/geotoll/internal/user"
	userdomain "github.com/smallbiznis/geotoll/internal/user/domain"
	"github.com/smallbiznis/geotoll/internal/zone"
	zonedomain "github.com/smallbiznis/geotoll/internal/zone/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	zone.Module,
	rule.Module,
	user.Module,
	ledger.Module,
	metering.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, m *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug: obsCfg.Debug(),
	}))
	r.Use(obsmetrics.GinMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, m *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(obsCfg, m)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	genID  *snowflake.Node

	userSvc     userdomain.Service
	zoneSvc     zonedomain.Service
	ruleSvc     ruledomain.Service
	ledgerSvc   ledgerdomain.Service
	meteringSvc meteringdomain.Service

	resolveLimiter *ratelimit.ResolveLimiter
	obsMetrics     *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	GenID       *snowflake.Node
	UserSvc     userdomain.Service
	ZoneSvc     zonedomain.Service
	RuleSvc     ruledomain.Service
	LedgerSvc   ledgerdomain.Service
	MeteringSvc meteringdomain.Service

	ResolveLimiter *ratelimit.ResolveLimiter `optional:"true"`
	ObsMetrics     *obsmetrics.Metrics       `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		genID:          p.GenID,
		userSvc:        p.UserSvc,
		zoneSvc:        p.ZoneSvc,
		ruleSvc:        p.RuleSvc,
		ledgerSvc:      p.LedgerSvc,
		meteringSvc:    p.MeteringSvc,
		resolveLimiter: p.ResolveLimiter,
		obsMetrics:     p.ObsMetrics,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Users --------
	api.POST("/register", s.RegisterUser)
	api.GET("/users", s.ListUsers)
	api.GET("/users/:id", s.GetUserByID)
	api.GET("/users/:id/balance", s.GetUserBalance)
	api.GET("/balance", s.GetBalance)

	// -------- Zones --------
	api.GET("/zones", s.ListZones)
	api.POST("/zones", s.CreateZone)
	api.GET("/zones/:id", s.GetZoneByID)
	api.PUT("/zones/:id", s.UpdateZone)
	api.DELETE("/zones/:id", s.DeleteZone)

	// -------- Charging rules --------
	api.GET("/charging-rules", s.ListRules)
	api.POST("/charging-rules", s.CreateRule)
	api.GET("/charging-rules/location", s.LookupRuleByLocation)
	api.GET("/charging-rules/:id", s.GetRuleByID)
	api.PUT("/charging-rules/:id", s.UpdateRule)
	api.DELETE("/charging-rules/:id", s.DeleteRule)
	api.POST("/charging-rules/:id/enable", s.EnableRule)
	api.POST("/charging-rules/:id/disable", s.DisableRule)

	// -------- Billing --------
	api.POST("/resolve", s.ResolveRateLimit(), s.Resolve)
	api.GET("/transactions", s.ListTransactions)
}
