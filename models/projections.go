package models

import (
	"time"
)

// Read projections assembled for client display. None of them carry password fields.

type FeedbackView struct {
	FeedbackID   uint      `json:"feedbackId"`
	ConsumerID   uint      `json:"consumerId"`
	ConsumerName string    `json:"consumerName"`
	BookingID    uint      `json:"bookingId"`
	Comments     string    `json:"comments"`
	Rating       int       `json:"rating"`
	ResponseDate time.Time `json:"responseDate"`
}

type AvailabilityView struct {
	WorkHoursStart string      `json:"workHoursStart"`
	WorkHoursEnd   string      `json:"workHoursEnd"`
	WorkingDays    WorkingDays `json:"workingDays"`
	TimePackages   int         `json:"timePackages"`
}

type ServiceView struct {
	ServiceID      uint              `json:"serviceId"`
	Name           string            `json:"name"`
	Specialization string            `json:"specialization"`
	Duration       int               `json:"duration"`
	Price          float64           `json:"price"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Availability   *AvailabilityView `json:"availability,omitempty"`
}

type ProviderView struct {
	ProviderID     uint          `json:"providerId"`
	Username       string        `json:"username"`
	Email          string        `json:"email"`
	Address        string        `json:"address"`
	Contact        string        `json:"contact"`
	Experience     int           `json:"experience"`
	IsActive       bool          `json:"isActive"`
	ProfilePicture string        `json:"profilePicture,omitempty"`
	Services       []ServiceView `json:"services"`
}

// ScheduleSlot is one bookable slot of a provider's service on a given date.
type ScheduleSlot struct {
	ServiceID   uint   `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Duration    int    `json:"duration"`
	Booked      bool   `json:"booked"`
	BookingID   *uint  `json:"bookingId,omitempty"`
}

func NewFeedbackView(f *Feedback) FeedbackView {
	v := FeedbackView{
		FeedbackID:   f.ID,
		ConsumerID:   f.ConsumerID,
		BookingID:    f.BookingID,
		Comments:     f.Comments,
		Rating:       f.Rating,
		ResponseDate: f.ResponseDate,
	}
	if f.Consumer != nil {
		v.ConsumerName = f.Consumer.Username
	}
	return v
}

func NewServiceView(s *Service) ServiceView {
	v := ServiceView{
		ServiceID:      s.ID,
		Name:           s.Name,
		Specialization: s.Specialization,
		Duration:       s.Duration,
		Price:          s.Price,
		Description:    s.Description,
		Category:       s.Category,
	}
	if a := s.Availability; a != nil {
		v.Availability = &AvailabilityView{
			WorkHoursStart: a.WorkHoursStart,
			WorkHoursEnd:   a.WorkHoursEnd,
			WorkingDays:    a.WorkingDays,
			TimePackages:   a.TimePackages,
		}
	}
	return v
}

func NewProviderView(p *ServiceProvider) ProviderView {
	v := ProviderView{
		ProviderID:     p.ID,
		Username:       p.Username,
		Email:          p.Email,
		Address:        p.Address,
		Contact:        p.Contact,
		Experience:     p.Experience,
		IsActive:       p.IsActive,
		ProfilePicture: p.ProfilePicture,
		Services:       make([]ServiceView, 0, len(p.Services)),
	}
	for i := range p.Services {
		v.Services = append(v.Services, NewServiceView(&p.Services[i]))
	}
	return v
}
