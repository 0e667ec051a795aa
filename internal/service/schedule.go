package service

import (
	"fmt"
	"time"

	"homekeeper/internal/model"
)

// NextOccurrence computes when a task falls due next, counted from base.
//
// MONTHLY follows AddDate normalization: a day-of-month past the end of the
// target month rolls over into the following month (Jan 31 -> Mar 2 or 3).
// Unknown cycle types are rejected rather than echoing base back, so a bad
// enum value can never freeze a schedule in place.
func NextOccurrence(base time.Time, cycle model.CycleType, customIntervalDays *int) (time.Time, error) {
	switch cycle {
	case model.CycleDaily:
		return base.AddDate(0, 0, 1), nil
	case model.CycleWeekly:
		return base.AddDate(0, 0, 7), nil
	case model.CycleMonthly:
		return base.AddDate(0, 1, 0), nil
	case model.CycleCustom:
		if customIntervalDays == nil || *customIntervalDays <= 0 {
			return time.Time{}, fmt.Errorf("%w: custom cycle needs a positive interval", ErrInvalidSchedule)
		}
		return base.AddDate(0, 0, *customIntervalDays), nil
	default:
		return time.Time{}, fmt.Errorf("%w: cycle type %q", ErrInvalidSchedule, cycle)
	}
}
