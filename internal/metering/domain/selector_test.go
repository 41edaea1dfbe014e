package domain

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/geotoll/internal/geo"
	ruledomain "github.com/smallbiznis/geotoll/internal/rule/domain"
	zonedomain "github.com/smallbiznis/geotoll/internal/zone/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func testRule(t *testing.T, id int64, lat, lng, radius float64, enabled bool) *ruledomain.Rule {
	t.Helper()
	return &ruledomain.Rule{
		ID:     snowflake.ParseInt64(id),
		ZoneID: snowflake.ParseInt64(id),
		Zone: &zonedomain.Zone{
			ID:           snowflake.ParseInt64(id),
			Name:         "zone",
			CenterLat:    &lat,
			CenterLng:    &lng,
			RadiusMeters: &radius,
		},
		StartTime: "00:00:00",
		EndTime:   "23:59:59",
		Weekdays:  datatypes.NewJSONSlice([]string{"Monday"}),
		Months:    datatypes.NewJSONSlice([]string{"June"}),
		Years:     datatypes.NewJSONSlice([]int{2024}),
		Amount:    decimal.RequireFromString("1.00"),
		RateUnit:  ruledomain.RateUnitHour,
		Enabled:   enabled,
	}
}

func TestSelectRuleFirstMatchWins(t *testing.T) {
	instant := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	point := geo.Point{Lat: 52.52, Lng: 13.405}

	// Both zones contain the point; the list is already in ascending
	// ID order, so the first one wins even though the second has a
	// tighter radius.
	wide := testRule(t, 1, 52.52, 13.405, 5000, true)
	tight := testRule(t, 2, 52.52, 13.405, 50, true)

	selected := SelectRule([]*ruledomain.Rule{wide, tight}, point, instant, time.UTC)
	require.NotNil(t, selected)
	assert.Equal(t, wide.ID, selected.ID)
}

func TestSelectRuleSkipsNonApplicable(t *testing.T) {
	instant := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	point := geo.Point{Lat: 52.52, Lng: 13.405}

	disabled := testRule(t, 1, 52.52, 13.405, 5000, false)
	elsewhere := testRule(t, 2, 48.85, 2.35, 100, true)
	match := testRule(t, 3, 52.52, 13.405, 100, true)

	selected := SelectRule([]*ruledomain.Rule{disabled, elsewhere, match}, point, instant, time.UTC)
	require.NotNil(t, selected)
	assert.Equal(t, match.ID, selected.ID)
}

func TestSelectRuleNoMatchIsNil(t *testing.T) {
	instant := time.Date(2024, time.June, 4, 10, 0, 0, 0, time.UTC) // Tuesday

	rule := testRule(t, 1, 52.52, 13.405, 5000, true)
	point := geo.Point{Lat: 52.52, Lng: 13.405}

	assert.Nil(t, SelectRule([]*ruledomain.Rule{rule}, point, instant, time.UTC))
	assert.Nil(t, SelectRule(nil, point, instant, time.UTC))
}

func TestSelectRuleSkipsRuleWithoutZone(t *testing.T) {
	instant := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	point := geo.Point{Lat: 52.52, Lng: 13.405}

	orphan := testRule(t, 1, 52.52, 13.405, 5000, true)
	orphan.Zone = nil
	match := testRule(t, 2, 52.52, 13.405, 100, true)

	selected := SelectRule([]*ruledomain.Rule{orphan, match}, point, instant, time.UTC)
	require.NotNil(t, selected)
	assert.Equal(t, match.ID, selected.ID)
}
