package cron

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/meinhoongagan/booking-marketplace/config"
	"github.com/meinhoongagan/booking-marketplace/metrics"
	"github.com/meinhoongagan/booking-marketplace/models"
	"github.com/meinhoongagan/booking-marketplace/services"
	"github.com/meinhoongagan/booking-marketplace/utils"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// reminderSlack widens the lookup window on both sides of now+lead.
const reminderSlack = 5 * time.Minute

// BookingSource is the part of the repository the reminder job reads.
type BookingSource interface {
	ListConfirmedBookingsBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error)
}

// Scheduler emails consumers shortly before their confirmed bookings start.
type Scheduler struct {
	cron     *cron.Cron
	bookings BookingSource
	notifier services.Notifier
	log      *zerolog.Logger
	lead     time.Duration
	loc      *time.Location
	now      func() time.Time

	mu   sync.Mutex
	sent map[uint]time.Time
}

func New(cfg config.RemindersConfig, bookings BookingSource, notifier services.Notifier, loc *time.Location, log *zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		bookings: bookings,
		notifier: notifier,
		log:      log,
		lead:     cfg.Lead,
		loc:      loc,
		now:      time.Now,
		sent:     make(map[uint]time.Time),
	}

	_, err := s.cron.AddFunc(cfg.Spec, func() {
		s.SendReminders(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add reminder job %q: %w", cfg.Spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Dur("lead", s.lead).Msg("booking reminder scheduler started")
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// SendReminders emails every consumer whose confirmed booking starts around now+lead and
// returns how many reminders went out. A booking is reminded at most once.
func (s *Scheduler) SendReminders(ctx context.Context) int {
	now := s.now()
	from := now.Add(s.lead - reminderSlack)
	to := now.Add(s.lead + reminderSlack)

	bookings, err := s.bookings.ListConfirmedBookingsBetween(ctx, from, to)
	if err != nil {
		s.log.Error().Err(err).Msg("error fetching bookings for reminders")
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, at := range s.sent {
		if at.Before(from) {
			delete(s.sent, id)
		}
	}

	sent := 0
	for i := range bookings {
		b := &bookings[i]
		if _, done := s.sent[b.ID]; done || b.Consumer == nil {
			continue
		}
		if err := s.notifier.Send(ctx, b.Consumer.Email, reminderSubject(b), s.reminderBody(b)); err != nil {
			s.log.Warn().Err(err).Uint("booking_id", b.ID).Msg("failed to send reminder")
			continue
		}
		s.sent[b.ID] = b.DateTime
		sent++
		metrics.IncReminder()
		s.log.Info().Uint("booking_id", b.ID).Str("to", b.Consumer.Email).Msg("sent booking reminder")
	}
	return sent
}

func reminderSubject(b *models.Booking) string {
	name := "your service"
	if b.Service != nil {
		name = b.Service.Name
	}
	return fmt.Sprintf("Reminder: Upcoming Booking - %s", name)
}

func (s *Scheduler) reminderBody(b *models.Booking) string {
	service, provider := "", ""
	if b.Service != nil {
		service = b.Service.Name
	}
	if b.Provider != nil {
		provider = b.Provider.Username
	}
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming booking.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
		</ul>
		<p>If you need to cancel, please do so from your bookings page.</p>
	`, b.Consumer.Username, service, provider, utils.FormatInZone(b.DateTime, s.loc))
}
