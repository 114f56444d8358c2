package models

import (
	"errors"
	"testing"
	"time"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nineToFive() *Availability {
	return &Availability{
		WorkHoursStart: "09:00",
		WorkHoursEnd:   "17:00",
		WorkingDays:    weekdaysOnly(),
		TimePackages:   30,
	}
}

// 2024-06-03 is a Monday.
func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.June, day, hour, minute, 0, 0, time.UTC)
}

func TestAvailabilityCheck(t *testing.T) {
	a := nineToFive()

	tests := []struct {
		name   string
		when   time.Time
		reason SlotRejection
	}{
		{"monday 10:00", at(3, 10, 0), ""},
		{"monday opening", at(3, 9, 0), ""},
		{"friday last slot", at(7, 16, 30), ""},
		{"sunday 10:00", at(9, 10, 0), RejectNonWorkingDay},
		{"saturday 10:00", at(8, 10, 0), RejectNonWorkingDay},
		{"monday 18:00", at(3, 18, 0), RejectOutsideHours},
		{"monday closing time", at(3, 17, 0), RejectOutsideHours},
		{"monday before opening", at(3, 8, 59), RejectOutsideHours},
		{"monday off grid", at(3, 10, 15), RejectMisaligned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Check(tt.when, true)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
			var slotErr *SlotError
			require.True(t, errors.As(err, &slotErr))
			assert.Equal(t, tt.reason, slotErr.Reason)
		})
	}
}

func TestAvailabilityCheckWithoutGrid(t *testing.T) {
	a := nineToFive()
	assert.NoError(t, a.Check(at(3, 10, 15), false))
	assert.Error(t, a.Check(time.Date(2024, time.June, 3, 10, 0, 30, 0, time.UTC), true))
}

func TestAvailabilityCheckUsesWallClock(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	a := nineToFive()
	// 04:30 UTC is 10:00 in IST on the same Monday.
	when := time.Date(2024, time.June, 3, 4, 30, 0, 0, time.UTC).In(kolkata)
	assert.NoError(t, a.Check(when, true))
}

func TestAvailabilityValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Availability)
		ok     bool
	}{
		{"valid", func(a *Availability) {}, true},
		{"start after end", func(a *Availability) { a.WorkHoursStart = "18:00" }, false},
		{"start equals end", func(a *Availability) { a.WorkHoursEnd = "09:00" }, false},
		{"bad clock", func(a *Availability) { a.WorkHoursEnd = "5pm" }, false},
		{"no working day", func(a *Availability) { a.WorkingDays = WorkingDays{time.Monday: false} }, false},
		{"zero slot", func(a *Availability) { a.TimePackages = 0 }, false},
		{"slot longer than window", func(a *Availability) { a.TimePackages = 481 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := nineToFive()
			tt.mutate(a)
			err := a.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
			}
		})
	}
}

func TestClock(t *testing.T) {
	m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)
	assert.Equal(t, "09:30", FormatClock(m))

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}
