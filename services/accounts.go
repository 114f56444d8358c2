package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/models"
	"github.com/meinhoongagan/booking-marketplace/repository"
	"github.com/rs/zerolog"
)

// ConsumerUpdate carries the self-service fields a consumer may change. Nil means unchanged.
type ConsumerUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
}

// ProviderUpdate carries the profile fields a provider may change. Nil means unchanged.
type ProviderUpdate struct {
	Username   *string `json:"username"`
	Email      *string `json:"email"`
	Address    *string `json:"address"`
	Contact    *string `json:"contact"`
	Experience *int    `json:"experience"`
	IsActive   *bool   `json:"isActive"`
}

// AccountService handles consumer and provider self-service.
type AccountService struct {
	repo     repository.Repository
	uploader Uploader
	log      *zerolog.Logger
}

// NewAccountService accepts a nil uploader; picture uploads are then refused.
func NewAccountService(repo repository.Repository, uploader Uploader, log *zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, uploader: uploader, log: nopLogger(log)}
}

func (s *AccountService) GetConsumer(ctx context.Context, id uint) (*models.Consumer, error) {
	return s.repo.GetConsumer(ctx, id)
}

func (s *AccountService) UpdateConsumer(ctx context.Context, id uint, in ConsumerUpdate) (*models.Consumer, error) {
	c, err := s.repo.GetConsumer(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		if c.Username = strings.TrimSpace(*in.Username); c.Username == "" {
			return nil, apperr.Invalid("username cannot be empty")
		}
	}
	if in.Email != nil {
		email, err := s.changeEmail(ctx, *in.Email, Subject{ID: id, Role: RoleConsumer})
		if err != nil {
			return nil, err
		}
		c.Email = email
	}
	if in.Status != nil {
		switch *in.Status {
		case models.ConsumerActive, models.ConsumerInactive:
			c.Status = *in.Status
		default:
			return nil, apperr.Invalid("status must be %q or %q", models.ConsumerActive, models.ConsumerInactive)
		}
	}
	setString(&c.Phone, in.Phone)
	setString(&c.Address, in.Address)
	setString(&c.Notes, in.Notes)

	if err := s.repo.UpdateConsumer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteConsumer removes the consumer along with its bookings and feedback.
func (s *AccountService) DeleteConsumer(ctx context.Context, id uint) error {
	if err := s.repo.DeleteConsumer(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("consumer_id", id).Msg("consumer deleted")
	return nil
}

func (s *AccountService) GetProviderProfile(ctx context.Context, id uint) (*models.ServiceProvider, error) {
	return s.repo.GetProvider(ctx, id)
}

func (s *AccountService) UpdateProviderProfile(ctx context.Context, id uint, in ProviderUpdate) (*models.ServiceProvider, error) {
	p, err := s.repo.GetProvider(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		if p.Username = strings.TrimSpace(*in.Username); p.Username == "" {
			return nil, apperr.Invalid("username cannot be empty")
		}
	}
	if in.Email != nil {
		email, err := s.changeEmail(ctx, *in.Email, Subject{ID: id, Role: RoleProvider})
		if err != nil {
			return nil, err
		}
		p.Email = email
	}
	if in.Experience != nil {
		if *in.Experience < 0 {
			return nil, apperr.Invalid("experience cannot be negative")
		}
		p.Experience = *in.Experience
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	setString(&p.Address, in.Address)
	setString(&p.Contact, in.Contact)

	if err := s.repo.UpdateProvider(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetProviderPicture uploads the image and stores its URL on the provider profile.
func (s *AccountService) SetProviderPicture(ctx context.Context, id uint, file io.Reader) (*models.ServiceProvider, error) {
	if s.uploader == nil {
		return nil, apperr.Invalid("picture uploads are not enabled")
	}
	p, err := s.repo.GetProvider(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.uploader.Upload(ctx, file, fmt.Sprintf("provider-%d-%s", id, uuid.NewString()))
	if err != nil {
		return nil, fmt.Errorf("upload profile picture: %w", err)
	}

	p.ProfilePicture = url
	if err := s.repo.UpdateProvider(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info().Uint("provider_id", id).Msg("profile picture updated")
	return p, nil
}

func (s *AccountService) changeEmail(ctx context.Context, raw string, owner Subject) (string, error) {
	email := normalizeEmail(raw)
	if email == "" || !strings.Contains(email, "@") {
		return "", apperr.Invalid("email %q is not valid", raw)
	}
	if err := emailFree(ctx, s.repo, email, owner); err != nil {
		return "", err
	}
	return email, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
