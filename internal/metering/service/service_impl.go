package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/geotoll/internal/clock"
	"github.com/smallbiznis/geotoll/internal/geo"
	ledgerdomain "github.com/smallbiznis/geotoll/internal/ledger/domain"
	"github.com/smallbiznis/geotoll/internal/metering/domain"
	"github.com/smallbiznis/geotoll/internal/observability/metrics"
	ruledomain "github.com/smallbiznis/geotoll/internal/rule/domain"
	userdomain "github.com/smallbiznis/geotoll/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Location   *time.Location
	RuleRepo   ruledomain.Repository
	UserRepo   userdomain.Repository
	LedgerRepo ledgerdomain.Repository
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	loc        *time.Location
	ruleRepo   ruledomain.Repository
	userRepo   userdomain.Repository
	ledgerRepo ledgerdomain.Repository
	metrics    *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("metering.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		loc:        p.Location,
		ruleRepo:   p.RuleRepo,
		userRepo:   p.UserRepo,
		ledgerRepo: p.LedgerRepo,
		metrics:    p.Metrics,
	}
}

func (s *Service) Resolve(ctx context.Context, req domain.ResolveRequest) (domain.ResolveResponse, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(req.UserID))
	if err != nil {
		return domain.ResolveResponse{}, domain.ErrInvalidUser
	}

	point := geo.Point{Lat: req.Latitude, Lng: req.Longitude}
	if !point.Valid() {
		return domain.ResolveResponse{}, domain.ErrInvalidCoordinates
	}

	now, err := s.resolveInstant(req.Timestamp)
	if err != nil {
		return domain.ResolveResponse{}, err
	}

	rules, err := s.ruleRepo.ListEnabled(ctx, s.db)
	if err != nil {
		return domain.ResolveResponse{}, err
	}

	selected := domain.SelectRule(rules, point, now, s.loc)
	if selected == nil {
		resp, err := s.noRuleMatched(ctx, userID)
		if err != nil {
			return domain.ResolveResponse{}, err
		}
		s.metrics.IncResolveOutcome(string(resp.Outcome))
		return resp, nil
	}

	resp, err := s.chargeIfDue(ctx, userID, selected, now)
	if err != nil {
		return domain.ResolveResponse{}, err
	}
	s.metrics.IncResolveOutcome(string(resp.Outcome))
	return resp, nil
}

func (s *Service) LookupRule(ctx context.Context, req domain.LookupRuleRequest) (*ruledomain.Rule, error) {
	point := geo.Point{Lat: req.Latitude, Lng: req.Longitude}
	if !point.Valid() {
		return nil, domain.ErrInvalidCoordinates
	}

	instant, err := s.resolveInstant(req.Timestamp)
	if err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.ListEnabled(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return domain.SelectRule(rules, point, instant, s.loc), nil
}

func (s *Service) noRuleMatched(ctx context.Context, userID snowflake.ID) (domain.ResolveResponse, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return domain.ResolveResponse{}, err
	}
	if user == nil {
		return domain.ResolveResponse{}, userdomain.ErrNotFound
	}
	return domain.ResolveResponse{
		Outcome: domain.OutcomeNoRuleMatched,
		Balance: user.Balance,
	}, nil
}

// chargeIfDue applies the metering state machine. The row lock on the
// user spans the read of (balance, watermark) and every write: two
// concurrent calls for one user cannot both observe the pre-charge
// watermark, so at most one of them charges.
func (s *Service) chargeIfDue(ctx context.Context, userID snowflake.ID, rule *ruledomain.Rule, now time.Time) (domain.ResolveResponse, error) {
	var resp domain.ResolveResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return userdomain.ErrNotFound
		}

		if user.LastCheckInAt == nil {
			if err := s.userRepo.UpdateWatermark(ctx, tx, userID, now); err != nil {
				return err
			}
			resp = domain.ResolveResponse{
				Outcome: domain.OutcomeFirstCheckIn,
				Balance: user.Balance,
				Zone:    rule.Zone,
			}
			return nil
		}

		watermark := user.LastCheckInAt.UTC()
		if now.Before(watermark) {
			return domain.ErrClockSkew
		}

		threshold, ok := rule.RateUnit.Threshold()
		if !ok {
			return ruledomain.ErrInvalidRateUnit
		}

		if now.Sub(watermark) < threshold {
			resp = domain.ResolveResponse{
				Outcome: domain.OutcomeNotDue,
				Balance: user.Balance,
				Zone:    rule.Zone,
			}
			return nil
		}

		// Exactly one unit per qualifying call, no matter how many
		// thresholds were skipped since the watermark.
		newBalance := user.Balance.Sub(rule.Amount)
		if err := s.userRepo.UpdateBalanceAndWatermark(ctx, tx, userID, newBalance, now); err != nil {
			return err
		}

		transaction := &ledgerdomain.Transaction{
			ID:        s.genID.Generate(),
			UserID:    userID,
			ZoneID:    rule.ZoneID,
			Amount:    rule.Amount,
			RateUnit:  string(rule.RateUnit),
			CreatedAt: now,
		}
		if err := s.ledgerRepo.Append(ctx, tx, transaction); err != nil {
			return err
		}

		resp = domain.ResolveResponse{
			Outcome:     domain.OutcomeCharged,
			Balance:     newBalance,
			Zone:        rule.Zone,
			Transaction: transaction,
		}
		return nil
	})
	if err != nil {
		return domain.ResolveResponse{}, err
	}

	if resp.Outcome == domain.OutcomeCharged {
		amount, _ := resp.Transaction.Amount.Float64()
		s.metrics.ObserveCharge(amount)
		s.log.Info("user charged",
			zap.String("user_id", userID.String()),
			zap.String("zone_id", rule.ZoneID.String()),
			zap.String("amount", resp.Transaction.Amount.String()),
			zap.String("rate_unit", string(rule.RateUnit)),
		)
	}
	return resp, nil
}

func (s *Service) resolveInstant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.clock.Now(), nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.ErrInvalidTimestamp
	}
	return parsed.UTC(), nil
}
