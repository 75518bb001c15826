// Package period maps an obligation cadence and a reference instant to the
// canonical billing period window. All windows are computed in UTC and are
// deterministic: the same reference instant always yields the same window,
// regardless of when an obligation was created.
package period

import (
	"fmt"
	"time"

	"github.com/budgetcr/budget_backend/internal/core/domain"
)

// BiweeklyEpoch anchors every biweekly window to a fixed known Monday.
// Biweekly periods are 14-day slots counted from this instant, so all
// biweekly obligations share synchronized boundaries. Changing this value
// would desynchronize the period boundaries of every live obligation.
var BiweeklyEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const biweeklyDays = 14

// CurrentPeriodStart returns the UTC start-of-day instant opening the period
// that encloses ref for the given cadence. An unknown cadence is a contract
// violation and returns an error; it never silently defaults.
func CurrentPeriodStart(cadence domain.Cadence, ref time.Time) (time.Time, error) {
	day := startOfDayUTC(ref)
	switch cadence {
	case domain.CadenceMonthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	case domain.CadenceWeekly:
		// Most recent Monday at or before the reference date.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset), nil
	case domain.CadenceBiweekly:
		days := int(day.Sub(BiweeklyEpoch).Hours() / 24)
		index := days / biweeklyDays
		if days < 0 && days%biweeklyDays != 0 {
			index--
		}
		return BiweeklyEpoch.AddDate(0, 0, index*biweeklyDays), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported cadence %q", cadence)
	}
}

// PeriodEnd returns the last instant of the period opened at start, with
// millisecond resolution (e.g. Sunday 23:59:59.999 for a weekly period).
func PeriodEnd(start time.Time, cadence domain.Cadence) (time.Time, error) {
	switch cadence {
	case domain.CadenceMonthly:
		return start.AddDate(0, 1, 0).Add(-time.Millisecond), nil
	case domain.CadenceWeekly:
		return start.AddDate(0, 0, 7).Add(-time.Millisecond), nil
	case domain.CadenceBiweekly:
		return start.AddDate(0, 0, biweeklyDays).Add(-time.Millisecond), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported cadence %q", cadence)
	}
}

// IsInPeriod reports whether t falls inside the period opened at start.
func IsInPeriod(t, start time.Time, cadence domain.Cadence) (bool, error) {
	end, err := PeriodEnd(start, cadence)
	if err != nil {
		return false, err
	}
	t = t.UTC()
	return !t.Before(start) && !t.After(end), nil
}

// DisplayText renders a human-readable label for the period opened at start,
// e.g. "March 2024" or "Mar 4 - Mar 17, 2024".
func DisplayText(start time.Time, cadence domain.Cadence) string {
	if cadence == domain.CadenceMonthly {
		return start.Format("January 2006")
	}
	end, err := PeriodEnd(start, cadence)
	if err != nil {
		return start.Format("Jan 2, 2006")
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
}

func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
