package services

import (
	"context"
	"time"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/models"
	"github.com/meinhoongagan/booking-marketplace/repository"
)

const (
	dateLayout      = "2006-01-02"
	MaxScheduleDays = 31
)

// ScheduleService assembles the read projections used for catalog browsing and calendars.
type ScheduleService struct {
	repo        repository.Repository
	loc         *time.Location
	horizonDays int
	now         func() time.Time
}

func NewScheduleService(repo repository.Repository, loc *time.Location, horizonDays int) *ScheduleService {
	if loc == nil {
		loc = time.UTC
	}
	if horizonDays <= 0 {
		horizonDays = 7
	}
	return &ScheduleService{repo: repo, loc: loc, horizonDays: horizonDays, now: time.Now}
}

func (s *ScheduleService) ListProvidersWithServices(ctx context.Context) ([]models.ProviderView, error) {
	providers, err := s.repo.ListProvidersWithServices(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.ProviderView, 0, len(providers))
	for i := range providers {
		out = append(out, models.NewProviderView(&providers[i]))
	}
	return out, nil
}

// ParseScheduleDate reads a YYYY-MM-DD date in the schedule location. Empty means today.
func (s *ScheduleService) ParseScheduleDate(v string) (time.Time, error) {
	if v == "" {
		return s.now().In(s.loc), nil
	}
	d, err := time.ParseInLocation(dateLayout, v, s.loc)
	if err != nil {
		return time.Time{}, apperr.Invalid("date %q must be YYYY-MM-DD", v)
	}
	return d, nil
}

// ListSchedulesForProvider expands every service availability of the provider into slots for
// each working day in [from, from+days). Slots taken by a live booking are flagged.
func (s *ScheduleService) ListSchedulesForProvider(ctx context.Context, providerID uint, from time.Time, days int) ([]models.ScheduleSlot, error) {
	switch {
	case days < 0:
		return nil, apperr.Invalid("days cannot be negative")
	case days == 0:
		days = s.horizonDays
	case days > MaxScheduleDays:
		days = MaxScheduleDays
	}

	if _, err := s.repo.GetProvider(ctx, providerID); err != nil {
		return nil, err
	}
	services, err := s.repo.ListServicesByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	from = from.In(s.loc)
	first := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, s.loc)
	last := time.Date(from.Year(), from.Month(), from.Day()+days, 0, 0, 0, 0, s.loc)

	ids := make([]uint, 0, len(services))
	for _, svc := range services {
		ids = append(ids, svc.ID)
	}
	bookings, err := s.repo.ListActiveBookingsForServices(ctx, ids, first, last)
	if err != nil {
		return nil, err
	}

	byService := make(map[uint][]models.Booking, len(services))
	for _, b := range bookings {
		byService[b.ServiceID] = append(byService[b.ServiceID], b)
	}

	slots := make([]models.ScheduleSlot, 0)
	for d := 0; d < days; d++ {
		date := time.Date(first.Year(), first.Month(), first.Day()+d, 0, 0, 0, 0, s.loc)
		for i := range services {
			svc := &services[i]
			a := svc.Availability
			if a == nil || !a.WorkingDays[date.Weekday()] || a.TimePackages <= 0 {
				continue
			}
			start, end, err := a.Window()
			if err != nil {
				return nil, err
			}

			for m := start; m < end; m += a.TimePackages {
				slotEnd := m + a.TimePackages
				if slotEnd > end {
					slotEnd = end
				}
				at := time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, s.loc)
				until := at.Add(time.Duration(slotEnd-m) * time.Minute)

				slot := models.ScheduleSlot{
					ServiceID:   svc.ID,
					ServiceName: svc.Name,
					Date:        date.Format(dateLayout),
					Start:       models.FormatClock(m),
					End:         models.FormatClock(slotEnd),
					Duration:    slotEnd - m,
				}
				if id, ok := occupant(byService[svc.ID], at, until, a.TimePackages); ok {
					slot.Booked = true
					slot.BookingID = &id
				}
				slots = append(slots, slot)
			}
		}
	}
	return slots, nil
}

// occupant returns the first booking overlapping [from, to). A booking holds one
// package length from its start, so off-grid bookings cover two slots.
func occupant(bookings []models.Booking, from, to time.Time, packageMinutes int) (uint, bool) {
	hold := time.Duration(packageMinutes) * time.Minute
	for _, b := range bookings {
		if b.DateTime.Before(to) && b.DateTime.Add(hold).After(from) {
			return b.ID, true
		}
	}
	return 0, false
}
