package services

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meinhoongagan/booking-marketplace/config"
	"github.com/meinhoongagan/booking-marketplace/db"
	"github.com/meinhoongagan/booking-marketplace/models"
	"github.com/meinhoongagan/booking-marketplace/repository"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *repository.Store {
	t.Helper()
	return newTestRepoWithSlots(t, false)
}

func newTestRepoWithSlots(t *testing.T, uniqueSlots bool) *repository.Store {
	t.Helper()
	conn, err := db.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
	}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn, uniqueSlots))
	t.Cleanup(func() { _ = db.Close(conn) })
	return repository.New(conn)
}

// 2024-06-03 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2024, time.June, 3, hour, minute, 0, 0, time.UTC)
}

func mondayToSaturday() models.WorkingDays {
	return models.WorkingDays{
		time.Monday: true, time.Tuesday: true, time.Wednesday: true, time.Thursday: true,
		time.Friday: true, time.Saturday: true, time.Sunday: false,
	}
}

func haircutSpec() ServiceSpec {
	return ServiceSpec{
		Name:     "Haircut",
		Price:    "25.50",
		Duration: 30,
		Category: "hair",
		Availability: &models.AvailabilityView{
			WorkHoursStart: "09:00",
			WorkHoursEnd:   "17:00",
			WorkingDays:    mondayToSaturday(),
			TimePackages:   30,
		},
	}
}

func createConsumer(t *testing.T, repo repository.Repository, name string) *models.Consumer {
	t.Helper()
	c := &models.Consumer{Username: name, Email: name + "@example.com", Password: "hash"}
	require.NoError(t, repo.CreateConsumer(context.Background(), c))
	return c
}

func createProvider(t *testing.T, repo repository.Repository, name string) *models.ServiceProvider {
	t.Helper()
	p := &models.ServiceProvider{Username: name, Email: name + "@example.com", Password: "hash", IsActive: true}
	require.NoError(t, repo.CreateProvider(context.Background(), p))
	return p
}

func createService(t *testing.T, repo repository.Repository, providerID uint) *models.Service {
	t.Helper()
	svc, err := NewCatalogService(repo, nil).CreateService(context.Background(), providerID, haircutSpec())
	require.NoError(t, err)
	return svc
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, file io.Reader, publicID string) (string, error) {
	args := m.Called(ctx, file, publicID)
	return args.String(0), args.Error(1)
}
