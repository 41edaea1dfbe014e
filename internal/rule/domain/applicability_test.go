package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func enabledRule(start, end string) *Rule {
	return &Rule{
		StartTime: start,
		EndTime:   end,
		Weekdays:  datatypes.NewJSONSlice([]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}),
		Months:    datatypes.NewJSONSlice([]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}),
		Years:     datatypes.NewJSONSlice([]int{2024}),
		Enabled:   true,
	}
}

func at(hour, minute int) time.Time {
	// Monday June 3 2024.
	return time.Date(2024, time.June, 3, hour, minute, 0, 0, time.UTC)
}

func TestWindowInclusiveBounds(t *testing.T) {
	rule := enabledRule("09:00:00", "17:00:00")

	assert.True(t, rule.IsApplicableAt(at(9, 0), time.UTC))
	assert.True(t, rule.IsApplicableAt(at(13, 0), time.UTC))
	assert.True(t, rule.IsApplicableAt(at(17, 0), time.UTC))
	assert.False(t, rule.IsApplicableAt(at(8, 59), time.UTC))
	assert.False(t, rule.IsApplicableAt(at(17, 1), time.UTC))
}

func TestWindowMidnightWraparound(t *testing.T) {
	rule := enabledRule("22:00:00", "02:00:00")

	// Inside the overnight window.
	assert.True(t, rule.IsApplicableAt(at(23, 0), time.UTC))
	assert.True(t, rule.IsApplicableAt(at(1, 0), time.UTC))
	assert.True(t, rule.IsApplicableAt(at(22, 0), time.UTC))
	assert.True(t, rule.IsApplicableAt(at(2, 0), time.UTC))

	// The daytime gap.
	assert.False(t, rule.IsApplicableAt(at(12, 0), time.UTC))
	assert.False(t, rule.IsApplicableAt(at(2, 1), time.UTC))
	assert.False(t, rule.IsApplicableAt(at(21, 59), time.UTC))
}

// A stored window that bypassed Validate must fail closed: the rule
// never applies, it does not become always-on.
func TestMalformedStoredWindowNeverApplies(t *testing.T) {
	rule := enabledRule("garbage", "17:00:00")
	assert.False(t, rule.IsApplicableAt(at(12, 0), time.UTC))

	rule = enabledRule("09:00:00", "25:61:00")
	assert.False(t, rule.IsApplicableAt(at(12, 0), time.UTC))
}

func TestDisabledRuleNeverApplies(t *testing.T) {
	rule := enabledRule("00:00:00", "23:59:59")
	rule.Enabled = false

	assert.False(t, rule.IsApplicableAt(at(12, 0), time.UTC))
}

func TestEmptyRecurrenceSetsNeverSatisfied(t *testing.T) {
	base := enabledRule("00:00:00", "23:59:59")

	noDays := *base
	noDays.Weekdays = nil
	assert.False(t, noDays.IsApplicableAt(at(12, 0), time.UTC))

	noMonths := *base
	noMonths.Months = nil
	assert.False(t, noMonths.IsApplicableAt(at(12, 0), time.UTC))

	noYears := *base
	noYears.Years = nil
	assert.False(t, noYears.IsApplicableAt(at(12, 0), time.UTC))
}

func TestRecurrenceMembershipCaseInsensitive(t *testing.T) {
	rule := enabledRule("00:00:00", "23:59:59")
	rule.Weekdays = datatypes.NewJSONSlice([]string{"monday"})
	rule.Months = datatypes.NewJSONSlice([]string{"JUNE"})

	assert.True(t, rule.IsApplicableAt(at(12, 0), time.UTC))

	// Tuesday June 4 2024 is not in the weekday set.
	tuesday := time.Date(2024, time.June, 4, 12, 0, 0, 0, time.UTC)
	assert.False(t, rule.IsApplicableAt(tuesday, time.UTC))
}

func TestReferenceLocationDecidesCalendar(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	rule := enabledRule("09:00:00", "17:00:00")
	rule.Weekdays = datatypes.NewJSONSlice([]string{"Tuesday"})

	// 23:30 UTC Monday is 08:30 Tuesday in Tokyo: right weekday,
	// before the window opens.
	instant := time.Date(2024, time.June, 3, 23, 30, 0, 0, time.UTC)
	assert.False(t, rule.IsApplicableAt(instant, time.UTC))
	assert.False(t, rule.IsApplicableAt(instant, tokyo))

	// 01:00 UTC Tuesday is 10:00 Tuesday in Tokyo: applicable there,
	// not in UTC where the window has not opened.
	instant = time.Date(2024, time.June, 4, 1, 0, 0, 0, time.UTC)
	assert.True(t, rule.IsApplicableAt(instant, tokyo))
	assert.False(t, rule.IsApplicableAt(instant, time.UTC))
}

func TestRateUnitThreshold(t *testing.T) {
	tests := []struct {
		unit RateUnit
		want time.Duration
	}{
		{RateUnitSecond, time.Second},
		{RateUnitMinute, time.Minute},
		{RateUnitHour, time.Hour},
		{RateUnitDay, 24 * time.Hour},
		{RateUnitWeek, 7 * 24 * time.Hour},
		{RateUnitMonth, 720 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			threshold, ok := tt.unit.Threshold()
			require.True(t, ok)
			assert.Equal(t, tt.want, threshold)
		})
	}

	_, ok := RateUnit("fortnight").Threshold()
	assert.False(t, ok)
}

func TestParseTimeOfDay(t *testing.T) {
	seconds, err := parseTimeOfDay("22:15:30")
	require.NoError(t, err)
	assert.Equal(t, 22*3600+15*60+30, seconds)

	seconds, err = parseTimeOfDay("09:00")
	require.NoError(t, err)
	assert.Equal(t, 9*3600, seconds)

	_, err = parseTimeOfDay("25:00:00")
	assert.Error(t, err)
	_, err = parseTimeOfDay("noon")
	assert.Error(t, err)
}
