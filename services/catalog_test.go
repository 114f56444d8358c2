package services

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
		ok    bool
	}{
		{"float", 12.5, 12.5, true},
		{"int", 40, 40, true},
		{"string", " 19.99 ", 19.99, true},
		{"json number", json.Number("7"), 7, true},
		{"zero", "0", 0, true},
		{"negative", -1.0, 0, false},
		{"negative string", "-3", 0, false},
		{"word", "cheap", 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf string", "Inf", 0, false},
		{"missing", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if !tt.ok {
				assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCreateService(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	provider := createProvider(t, repo, "pat")
	catalog := NewCatalogService(repo, nil)

	svc, err := catalog.CreateService(ctx, provider.ID, haircutSpec())
	require.NoError(t, err)
	assert.NotZero(t, svc.ID)
	assert.InDelta(t, 25.5, svc.Price, 1e-9)
	require.NotNil(t, svc.Availability)
	assert.Equal(t, svc.ID, svc.Availability.ServiceID)

	stored, err := catalog.GetService(ctx, svc.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Availability)
	assert.Equal(t, mondayToSaturday(), stored.Availability.WorkingDays)
	assert.Equal(t, 30, stored.Availability.TimePackages)
}

func TestCreateServiceRejectsWithoutPartialWrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	provider := createProvider(t, repo, "pat")
	catalog := NewCatalogService(repo, nil)

	tests := []struct {
		name   string
		mutate func(*ServiceSpec)
		kind   error
	}{
		{"bad price", func(s *ServiceSpec) { s.Price = "abc" }, apperr.ErrInvalidArgument},
		{"no name", func(s *ServiceSpec) { s.Name = " " }, apperr.ErrInvalidArgument},
		{"no availability", func(s *ServiceSpec) { s.Availability = nil }, apperr.ErrInvalidArgument},
		{"inverted hours", func(s *ServiceSpec) { s.Availability.WorkHoursStart = "18:00" }, apperr.ErrInvalidArgument},
		{"no working day", func(s *ServiceSpec) {
			s.Availability.WorkingDays = models.WorkingDays{time.Monday: false}
		}, apperr.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := haircutSpec()
			tt.mutate(&spec)
			_, err := catalog.CreateService(ctx, provider.ID, spec)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	list, err := catalog.ListServices(ctx, provider.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = catalog.CreateService(ctx, 999, haircutSpec())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateServiceBootstrapsLikeCreate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	provider := createProvider(t, repo, "pat")
	catalog := NewCatalogService(repo, nil)

	svc, err := catalog.UpdateService(ctx, provider.ID, haircutSpec())
	require.NoError(t, err)
	require.NotNil(t, svc.Availability)

	list, err := catalog.ListServices(ctx, provider.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, svc.ID, list[0].ID)
}

func TestUpdateServiceOverwritesInPlace(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	provider := createProvider(t, repo, "pat")
	catalog := NewCatalogService(repo, nil)
	original := createService(t, repo, provider.ID)

	spec := haircutSpec()
	spec.Name = "Premium haircut"
	spec.Price = 40.0
	spec.Availability.WorkHoursStart = "10:00"
	spec.Availability.TimePackages = 60

	updated, err := catalog.UpdateService(ctx, provider.ID, spec)
	require.NoError(t, err)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, original.Availability.ID, updated.Availability.ID)

	list, err := catalog.ListServices(ctx, provider.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Premium haircut", list[0].Name)
	assert.InDelta(t, 40.0, list[0].Price, 1e-9)
	assert.Equal(t, "10:00", list[0].Availability.WorkHoursStart)
	assert.Equal(t, 60, list[0].Availability.TimePackages)

	// Without an availability the existing one is kept.
	spec.Availability = nil
	kept, err := catalog.UpdateService(ctx, provider.ID, spec)
	require.NoError(t, err)
	require.NotNil(t, kept.Availability)
	assert.Equal(t, 60, kept.Availability.TimePackages)
}

func TestUpdateServiceCreatesMissingAvailability(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	provider := createProvider(t, repo, "pat")
	catalog := NewCatalogService(repo, nil)

	bare := &models.Service{ProviderID: provider.ID, Name: "Legacy"}
	require.NoError(t, repo.CreateService(ctx, bare))

	spec := haircutSpec()
	spec.Availability = nil
	_, err := catalog.UpdateService(ctx, provider.ID, spec)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	spec = haircutSpec()
	spec.ServiceID = bare.ID
	svc, err := catalog.UpdateService(ctx, provider.ID, spec)
	require.NoError(t, err)
	assert.Equal(t, bare.ID, svc.ID)

	a, err := repo.GetAvailabilityByService(ctx, bare.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", a.WorkHoursStart)
}

func TestUpdateServiceAmbiguityAndOwnership(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	pat := createProvider(t, repo, "pat")
	sam := createProvider(t, repo, "sam")
	catalog := NewCatalogService(repo, nil)

	first := createService(t, repo, pat.ID)
	createService(t, repo, pat.ID)
	samService := createService(t, repo, sam.ID)

	_, err := catalog.UpdateService(ctx, pat.ID, haircutSpec())
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	spec := haircutSpec()
	spec.ServiceID = first.ID
	_, err = catalog.UpdateService(ctx, pat.ID, spec)
	assert.NoError(t, err)

	spec.ServiceID = samService.ID
	_, err = catalog.UpdateService(ctx, pat.ID, spec)
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

	spec.ServiceID = 999
	_, err = catalog.UpdateService(ctx, pat.ID, spec)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	list, err := catalog.ListServices(ctx, pat.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDeleteService(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	pat := createProvider(t, repo, "pat")
	sam := createProvider(t, repo, "sam")
	consumer := createConsumer(t, repo, "carol")
	catalog := NewCatalogService(repo, nil)

	booked := createService(t, repo, pat.ID)
	free := createService(t, repo, pat.ID)

	_, err := NewBookingService(repo, nil, nil, BookingOptions{AlignGrid: true}).CreateBooking(ctx, CreateBookingInput{
		ConsumerID: consumer.ID, ProviderID: pat.ID, ServiceID: booked.ID, DateTime: monday(10, 0),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, catalog.DeleteService(ctx, sam.ID, free.ID), apperr.ErrPermissionDenied)
	assert.ErrorIs(t, catalog.DeleteService(ctx, pat.ID, booked.ID), apperr.ErrConflict)
	require.NoError(t, catalog.DeleteService(ctx, pat.ID, free.ID))

	_, err = catalog.GetService(ctx, free.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = repo.GetAvailabilityByService(ctx, free.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
