package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/metrics"
	"github.com/meinhoongagan/booking-marketplace/models"
	"github.com/meinhoongagan/booking-marketplace/repository"
	"github.com/meinhoongagan/booking-marketplace/utils"
	"github.com/rs/zerolog"
)

type BookingOptions struct {
	// Location is the zone in which candidate instants are checked against work hours.
	Location *time.Location
	// AlignGrid requires bookings to start on the timePackages grid.
	AlignGrid bool
	// UniqueSlots rejects a second live booking for the same service and instant.
	UniqueSlots bool
}

type CreateBookingInput struct {
	ConsumerID      uint      `json:"consumerId"`
	ProviderID      uint      `json:"providerId"`
	ServiceID       uint      `json:"serviceId"`
	DateTime        time.Time `json:"dateTime"`
	SpecialRequests string    `json:"specialRequests"`
}

// BookingService creates bookings and drives their lifecycle.
type BookingService struct {
	repo     repository.Repository
	notifier Notifier
	log      *zerolog.Logger
	opts     BookingOptions
}

func NewBookingService(repo repository.Repository, notifier Notifier, log *zerolog.Logger, opts BookingOptions) *BookingService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &BookingService{repo: repo, notifier: notifier, log: nopLogger(log), opts: opts}
}

// Location is the zone bookings are evaluated in.
func (s *BookingService) Location() *time.Location {
	return s.opts.Location
}

// CreateBooking validates the requested instant against the service availability and
// persists a REQUESTED booking.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if in.ConsumerID == 0 || in.ProviderID == 0 || in.ServiceID == 0 {
		return nil, apperr.Invalid("consumerId, providerId and serviceId are required")
	}
	if in.DateTime.IsZero() {
		return nil, apperr.Invalid("dateTime is required")
	}

	consumer, err := s.repo.GetConsumer(ctx, in.ConsumerID)
	if err != nil {
		return nil, err
	}
	provider, err := s.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}
	service, err := s.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if service.ProviderID != provider.ID {
		return nil, apperr.NotFound("service %d for provider %d", service.ID, provider.ID)
	}
	if service.Availability == nil {
		metrics.IncBookingRejected("no-availability")
		return nil, apperr.Invalid("service %d has no availability", service.ID)
	}

	local := in.DateTime.In(s.opts.Location)
	if err := service.Availability.Check(local, s.opts.AlignGrid); err != nil {
		var slotErr *models.SlotError
		if errors.As(err, &slotErr) {
			metrics.IncBookingRejected(string(slotErr.Reason))
		}
		return nil, err
	}

	booking := &models.Booking{
		ConsumerID:      consumer.ID,
		ProviderID:      provider.ID,
		ServiceID:       service.ID,
		DateTime:        in.DateTime.UTC(),
		Status:          models.StatusRequested,
		SpecialRequests: in.SpecialRequests,
	}

	err = s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if s.opts.UniqueSlots {
			n, err := tx.CountActiveBookingsAt(ctx, service.ID, booking.DateTime)
			if err != nil {
				return err
			}
			if n > 0 {
				return apperr.Conflict("slot %s is already booked", local.Format(time.RFC3339))
			}
		}
		return tx.CreateBooking(ctx, booking)
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			metrics.IncBookingRejected("slot-taken")
		}
		return nil, err
	}

	booking.Consumer, booking.Provider, booking.Service = consumer, provider, service
	metrics.IncBookingCreated()
	s.log.Info().
		Uint("booking_id", booking.ID).
		Uint("consumer_id", consumer.ID).
		Uint("service_id", service.ID).
		Time("date_time", booking.DateTime).
		Msg("booking created")

	s.notify(ctx, booking, "Booking requested",
		fmt.Sprintf("%s was requested for %s.", service.Name, utils.FormatInZone(booking.DateTime, s.opts.Location)))
	return booking, nil
}

// TransitionBooking moves a booking along its lifecycle. The owning provider may confirm,
// complete or cancel; the owning consumer may only cancel.
func (s *BookingService) TransitionBooking(ctx context.Context, sub Subject, bookingID uint, status models.BookingStatus) (*models.Booking, error) {
	if _, ok := models.ParseBookingStatus(string(status)); !ok {
		return nil, apperr.Invalid("unknown booking status %q", status)
	}

	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch {
	case sub.Is(RoleProvider, booking.ProviderID):
	case sub.Is(RoleConsumer, booking.ConsumerID):
		if status != models.StatusCancelled {
			return nil, apperr.Denied("consumers may only cancel their bookings")
		}
	default:
		return nil, apperr.Denied("booking %d does not belong to the caller", bookingID)
	}

	previous := booking.Status
	if err := booking.Transition(status); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateBookingStatus(ctx, booking.ID, previous, booking.Status); err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("booking_id", booking.ID).
		Str("from", string(previous)).
		Str("to", string(booking.Status)).
		Msg("booking status changed")

	name := ""
	if booking.Service != nil {
		name = booking.Service.Name
	}
	s.notify(ctx, booking, "Booking "+string(booking.Status),
		fmt.Sprintf("Your booking %d for %s is now %s.", booking.ID, name, booking.Status))
	return booking, nil
}

// ListBookings returns the caller's own bookings in insertion order.
func (s *BookingService) ListBookings(ctx context.Context, sub Subject) ([]models.Booking, error) {
	switch sub.Role {
	case RoleConsumer:
		return s.repo.ListBookingsByConsumer(ctx, sub.ID)
	case RoleProvider:
		return s.repo.ListBookingsByProvider(ctx, sub.ID)
	}
	return nil, apperr.Denied("unknown role %q", sub.Role)
}

// notify emails both parties. Failures are logged and otherwise ignored.
func (s *BookingService) notify(ctx context.Context, b *models.Booking, subject, body string) {
	var recipients []string
	if b.Consumer != nil && b.Consumer.Email != "" {
		recipients = append(recipients, b.Consumer.Email)
	}
	if b.Provider != nil && b.Provider.Email != "" {
		recipients = append(recipients, b.Provider.Email)
	}

	for _, to := range recipients {
		if err := s.notifier.Send(ctx, to, subject, body); err != nil {
			s.log.Warn().Err(err).Uint("booking_id", b.ID).Str("to", to).Msg("booking notification failed")
		}
	}
}
