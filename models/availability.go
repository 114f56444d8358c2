package models

import (
	"fmt"
	"time"

	"github.com/meinhoongagan/booking-marketplace/apperr"
)

const clockLayout = "15:04"

// SlotRejection names why a candidate instant is not bookable.
type SlotRejection string

const (
	RejectNonWorkingDay SlotRejection = "non-working-day"
	RejectOutsideHours  SlotRejection = "outside-hours"
	RejectMisaligned    SlotRejection = "misaligned-slot"
)

// SlotError is returned by Availability.Check. It matches apperr.ErrInvalidArgument.
type SlotError struct {
	Reason SlotRejection
	At     time.Time
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("outside availability: %s at %s", e.Reason, e.At.Format("Mon 2006-01-02 15:04"))
}

func (e *SlotError) Unwrap() error { return apperr.ErrInvalidArgument }

// Availability is the recurring weekly window in which a Service can be booked.
// Work hours are "HH:MM" strings on a 24h clock; TimePackages is the slot length in minutes.
type Availability struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	ServiceID      uint        `json:"service_id" gorm:"uniqueIndex;not null"`
	WorkHoursStart string      `json:"work_hours_start" gorm:"size:5;not null"`
	WorkHoursEnd   string      `json:"work_hours_end" gorm:"size:5;not null"`
	WorkingDays    WorkingDays `json:"working_days" gorm:"type:text;not null"`
	TimePackages   int         `json:"time_packages" gorm:"not null"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// ParseClock converts "HH:MM" into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, apperr.Invalid("time of day %q must be HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes after midnight back into "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Window returns the work hours as minutes after midnight.
func (a *Availability) Window() (start, end int, err error) {
	if start, err = ParseClock(a.WorkHoursStart); err != nil {
		return 0, 0, err
	}
	if end, err = ParseClock(a.WorkHoursEnd); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Validate enforces start < end, at least one working day and a slot length that fits the window.
func (a *Availability) Validate() error {
	start, end, err := a.Window()
	if err != nil {
		return err
	}
	if start >= end {
		return apperr.Invalid("work hours start %s must be before end %s", a.WorkHoursStart, a.WorkHoursEnd)
	}
	if !a.WorkingDays.Any() {
		return apperr.Invalid("at least one working day is required")
	}
	if a.TimePackages < 1 || a.TimePackages > end-start {
		return apperr.Invalid("time packages must be between 1 and %d minutes", end-start)
	}
	return nil
}

// Check decides whether the wall-clock instant t is bookable. The weekday must be marked
// working and the time of day must lie in [start, end). When alignGrid is set the time of
// day must also fall on the TimePackages grid counted from start.
func (a *Availability) Check(t time.Time, alignGrid bool) error {
	if !a.WorkingDays[t.Weekday()] {
		return &SlotError{Reason: RejectNonWorkingDay, At: t}
	}

	start, end, err := a.Window()
	if err != nil {
		return err
	}

	offset := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
	if offset < time.Duration(start)*time.Minute || offset >= time.Duration(end)*time.Minute {
		return &SlotError{Reason: RejectOutsideHours, At: t}
	}

	if alignGrid && a.TimePackages > 0 {
		step := time.Duration(a.TimePackages) * time.Minute
		if (offset-time.Duration(start)*time.Minute)%step != 0 {
			return &SlotError{Reason: RejectMisaligned, At: t}
		}
	}
	return nil
}
