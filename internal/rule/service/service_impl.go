package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/geotoll/internal/rule/domain"
	zonedomain "github.com/smallbiznis/geotoll/internal/zone/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	ZoneSvc zonedomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	zonesvc zonedomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("rule.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		zonesvc: p.ZoneSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRuleRequest) (domain.Rule, error) {
	rule, err := s.fromRequest(ctx, req)
	if err != nil {
		return domain.Rule{}, err
	}

	now := time.Now().UTC()
	rule.ID = s.genID.Generate()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	if err := s.repo.Insert(ctx, s.db, &rule); err != nil {
		return domain.Rule{}, err
	}
	return rule, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Rule, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	rules := make([]domain.Rule, 0, len(items))
	for _, item := range items {
		if item != nil {
			rules = append(rules, *item)
		}
	}
	return rules, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Rule, error) {
	ruleID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.Rule{}, domain.ErrInvalidID
	}

	rule, err := s.repo.FindByID(ctx, s.db, ruleID)
	if err != nil {
		return domain.Rule{}, err
	}
	if rule == nil {
		return domain.Rule{}, domain.ErrNotFound
	}
	return *rule, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRuleRequest) (domain.Rule, error) {
	current, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return domain.Rule{}, err
	}

	updated, err := s.fromRequest(ctx, req.CreateRuleRequest)
	if err != nil {
		return domain.Rule{}, err
	}

	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, &updated); err != nil {
		return domain.Rule{}, err
	}
	updated.Zone = nil
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ruleID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, ruleID)
}

func (s *Service) SetEnabled(ctx context.Context, id string, enabled bool) (domain.Rule, error) {
	ruleID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.Rule{}, domain.ErrInvalidID
	}

	affected, err := s.repo.SetEnabled(ctx, s.db, ruleID, enabled)
	if err != nil {
		return domain.Rule{}, err
	}
	if affected == 0 {
		return domain.Rule{}, domain.ErrNotFound
	}

	s.log.Info("rule enabled flag changed",
		zap.String("rule_id", ruleID.String()),
		zap.Bool("enabled", enabled),
	)
	return s.GetByID(ctx, id)
}

func (s *Service) fromRequest(ctx context.Context, req domain.CreateRuleRequest) (domain.Rule, error) {
	zoneID, err := snowflake.ParseString(strings.TrimSpace(req.ZoneID))
	if err != nil {
		return domain.Rule{}, domain.ErrInvalidZone
	}
	if _, err := s.zonesvc.GetByID(ctx, zoneID.String()); err != nil {
		return domain.Rule{}, domain.ErrInvalidZone
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return domain.Rule{}, domain.ErrInvalidAmount
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	rule := domain.Rule{
		ZoneID:    zoneID,
		StartTime: strings.TrimSpace(req.StartTime),
		EndTime:   strings.TrimSpace(req.EndTime),
		Weekdays:  datatypes.NewJSONSlice(normalizeSet(req.Weekdays)),
		Months:    datatypes.NewJSONSlice(normalizeSet(req.Months)),
		Years:     datatypes.NewJSONSlice(req.Years),
		Amount:    amount,
		RateUnit:  domain.RateUnit(strings.ToLower(strings.TrimSpace(req.RateUnit))),
		Enabled:   enabled,
	}
	if err := rule.Validate(); err != nil {
		return domain.Rule{}, err
	}
	return rule, nil
}

func normalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
