package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/geotoll/internal/rule/domain"
	"github.com/smallbiznis/geotoll/internal/rule/repository"
	zonedomain "github.com/smallbiznis/geotoll/internal/zone/domain"
	zonerepo "github.com/smallbiznis/geotoll/internal/zone/repository"
	zoneservice "github.com/smallbiznis/geotoll/internal/zone/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, zonedomain.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&zonedomain.Zone{}, &domain.Rule{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	zones := zoneservice.New(zoneservice.Params{
		DB: db, Log: log, GenID: node, Repo: zonerepo.Provide(),
	})
	rules := New(Params{
		DB: db, Log: log, GenID: node, Repo: repository.Provide(), ZoneSvc: zones,
	})
	return rules, zones
}

func createTestZone(t *testing.T, zones zonedomain.Service) zonedomain.Zone {
	t.Helper()
	lat, lng, radius := 52.52, 13.405, 100.0
	zone, err := zones.Create(context.Background(), zonedomain.CreateZoneRequest{
		Name:         "test zone",
		CenterLat:    &lat,
		CenterLng:    &lng,
		RadiusMeters: &radius,
	})
	require.NoError(t, err)
	return zone
}

func baseRequest(zoneID string) domain.CreateRuleRequest {
	return domain.CreateRuleRequest{
		ZoneID:    zoneID,
		StartTime: "09:00:00",
		EndTime:   "17:00:00",
		Weekdays:  []string{"Monday"},
		Months:    []string{"June"},
		Years:     []int{2024},
		Amount:    "5.00",
		RateUnit:  "hour",
	}
}

func TestCreateDefaultsToEnabled(t *testing.T) {
	rules, zones := newTestService(t)
	zone := createTestZone(t, zones)

	rule, err := rules.Create(context.Background(), baseRequest(zone.ID.String()))
	require.NoError(t, err)
	assert.True(t, rule.Enabled)

	stored, err := rules.GetByID(context.Background(), rule.ID.String())
	require.NoError(t, err)
	assert.True(t, stored.Enabled)
}

// A rule authored disabled must round-trip disabled. The enabled
// column must not fall back to a schema default on insert.
func TestCreateDisabledPersistsDisabled(t *testing.T) {
	rules, zones := newTestService(t)
	zone := createTestZone(t, zones)

	disabled := false
	req := baseRequest(zone.ID.String())
	req.Enabled = &disabled

	rule, err := rules.Create(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, rule.Enabled)

	stored, err := rules.GetByID(context.Background(), rule.ID.String())
	require.NoError(t, err)
	assert.False(t, stored.Enabled, "rule created disabled must stay disabled after insert")
}

func TestSetEnabledRoundTrip(t *testing.T) {
	rules, zones := newTestService(t)
	zone := createTestZone(t, zones)

	rule, err := rules.Create(context.Background(), baseRequest(zone.ID.String()))
	require.NoError(t, err)
	require.True(t, rule.Enabled)

	rule, err = rules.SetEnabled(context.Background(), rule.ID.String(), false)
	require.NoError(t, err)
	assert.False(t, rule.Enabled)

	rule, err = rules.SetEnabled(context.Background(), rule.ID.String(), true)
	require.NoError(t, err)
	assert.True(t, rule.Enabled)
}

func TestCreateValidation(t *testing.T) {
	rules, zones := newTestService(t)
	zone := createTestZone(t, zones)

	tests := []struct {
		name    string
		mutate  func(*domain.CreateRuleRequest)
		wantErr error
	}{
		{"unknown zone", func(r *domain.CreateRuleRequest) { r.ZoneID = "12345" }, domain.ErrInvalidZone},
		{"bad amount", func(r *domain.CreateRuleRequest) { r.Amount = "five" }, domain.ErrInvalidAmount},
		{"negative amount", func(r *domain.CreateRuleRequest) { r.Amount = "-1.00" }, domain.ErrInvalidAmount},
		{"bad rate unit", func(r *domain.CreateRuleRequest) { r.RateUnit = "fortnight" }, domain.ErrInvalidRateUnit},
		{"bad window", func(r *domain.CreateRuleRequest) { r.StartTime = "25:00:00" }, domain.ErrInvalidTimeWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest(zone.ID.String())
			tt.mutate(&req)
			_, err := rules.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
