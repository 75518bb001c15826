package period_test

import (
	"testing"
	"time"

	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/budgetcr/budget_backend/internal/core/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestBiweeklyEpochIsAMonday(t *testing.T) {
	assert.Equal(t, time.Monday, period.BiweeklyEpoch.Weekday())
}

func TestCurrentPeriodStart(t *testing.T) {
	tests := []struct {
		name    string
		cadence domain.Cadence
		ref     time.Time
		want    time.Time
	}{
		{"monthly mid-month", domain.CadenceMonthly, utc(2024, 3, 15, 14, 30), utc(2024, 3, 1, 0, 0)},
		{"monthly first day", domain.CadenceMonthly, utc(2024, 3, 1, 0, 0), utc(2024, 3, 1, 0, 0)},
		{"monthly last day", domain.CadenceMonthly, utc(2024, 2, 29, 23, 59), utc(2024, 2, 1, 0, 0)},
		{"weekly on a monday", domain.CadenceWeekly, utc(2024, 3, 11, 0, 0), utc(2024, 3, 11, 0, 0)},
		{"weekly mid-week", domain.CadenceWeekly, utc(2024, 3, 14, 9, 0), utc(2024, 3, 11, 0, 0)},
		{"weekly on a sunday", domain.CadenceWeekly, utc(2024, 3, 17, 23, 59), utc(2024, 3, 11, 0, 0)},
		{"biweekly at epoch", domain.CadenceBiweekly, period.BiweeklyEpoch, period.BiweeklyEpoch},
		{"biweekly inside first slot", domain.CadenceBiweekly, utc(2024, 1, 14, 12, 0), period.BiweeklyEpoch},
		{"biweekly second slot", domain.CadenceBiweekly, utc(2024, 1, 15, 0, 0), utc(2024, 1, 15, 0, 0)},
		{"biweekly later slot", domain.CadenceBiweekly, utc(2024, 3, 20, 8, 0), utc(2024, 3, 11, 0, 0)},
		{"biweekly before epoch", domain.CadenceBiweekly, utc(2023, 12, 31, 12, 0), utc(2023, 12, 18, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := period.CurrentPeriodStart(tt.cadence, tt.ref)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestCurrentPeriodStart_UnknownCadenceIsAnError(t *testing.T) {
	_, err := period.CurrentPeriodStart(domain.Cadence("QUARTERLY"), utc(2024, 3, 15, 0, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUARTERLY")
}

func TestBiweeklyDeterminism(t *testing.T) {
	// Any two instants in the same 14-day slot relative to the epoch share a
	// period start, no matter when the obligation was created.
	t1 := utc(2024, 3, 11, 0, 0)
	t2 := utc(2024, 3, 24, 23, 59)

	s1, err := period.CurrentPeriodStart(domain.CadenceBiweekly, t1)
	require.NoError(t, err)
	s2, err := period.CurrentPeriodStart(domain.CadenceBiweekly, t2)
	require.NoError(t, err)

	assert.True(t, s1.Equal(s2))

	next, err := period.CurrentPeriodStart(domain.CadenceBiweekly, utc(2024, 3, 25, 0, 0))
	require.NoError(t, err)
	assert.True(t, next.Equal(s1.AddDate(0, 0, 14)))
}

func TestPeriodEnd(t *testing.T) {
	monthly, err := period.PeriodEnd(utc(2024, 2, 1, 0, 0), domain.CadenceMonthly)
	require.NoError(t, err)
	assert.True(t, monthly.Equal(time.Date(2024, 2, 29, 23, 59, 59, 999000000, time.UTC)))

	weekly, err := period.PeriodEnd(utc(2024, 3, 11, 0, 0), domain.CadenceWeekly)
	require.NoError(t, err)
	assert.True(t, weekly.Equal(time.Date(2024, 3, 17, 23, 59, 59, 999000000, time.UTC)))

	biweekly, err := period.PeriodEnd(utc(2024, 3, 11, 0, 0), domain.CadenceBiweekly)
	require.NoError(t, err)
	assert.True(t, biweekly.Equal(time.Date(2024, 3, 24, 23, 59, 59, 999000000, time.UTC)))

	_, err = period.PeriodEnd(utc(2024, 3, 11, 0, 0), domain.Cadence("DAILY"))
	assert.Error(t, err)
}

func TestIsInPeriod(t *testing.T) {
	start := utc(2024, 3, 1, 0, 0)

	inside, err := period.IsInPeriod(utc(2024, 3, 28, 12, 0), start, domain.CadenceMonthly)
	require.NoError(t, err)
	assert.True(t, inside)

	atStart, err := period.IsInPeriod(start, start, domain.CadenceMonthly)
	require.NoError(t, err)
	assert.True(t, atStart)

	after, err := period.IsInPeriod(utc(2024, 4, 1, 0, 0), start, domain.CadenceMonthly)
	require.NoError(t, err)
	assert.False(t, after)

	before, err := period.IsInPeriod(utc(2024, 2, 29, 23, 59), start, domain.CadenceMonthly)
	require.NoError(t, err)
	assert.False(t, before)
}

func TestDisplayText(t *testing.T) {
	assert.Equal(t, "March 2024", period.DisplayText(utc(2024, 3, 1, 0, 0), domain.CadenceMonthly))
	assert.Equal(t, "Mar 11 - Mar 17, 2024", period.DisplayText(utc(2024, 3, 11, 0, 0), domain.CadenceWeekly))
	assert.Equal(t, "Mar 11 - Mar 24, 2024", period.DisplayText(utc(2024, 3, 11, 0, 0), domain.CadenceBiweekly))
}
