package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{apperr.NotFound("booking %d", 1), fiber.StatusNotFound, "not_found"},
		{apperr.Invalid("bad"), fiber.StatusBadRequest, "invalid_argument"},
		{apperr.DataFormat("bad"), fiber.StatusBadRequest, "data_format"},
		{apperr.Denied("no"), fiber.StatusForbidden, "permission_denied"},
		{apperr.Unauthenticated("no"), fiber.StatusUnauthorized, "unauthenticated"},
		{fmt.Errorf("wrapped: %w", apperr.Conflict("dup")), fiber.StatusConflict, "conflict"},
		{errors.New("pq: connection refused"), fiber.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			status, body := ErrorFor(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, body.Error)
		})
	}

	_, body := ErrorFor(errors.New("pq: connection refused"))
	assert.NotContains(t, body.Message, "pq")
}

func TestMailerMessage(t *testing.T) {
	m := NewMailer(config.SMTPConfig{Host: "localhost", Port: 2525, From: "bookings@example.com"})
	msg := m.message("carol@example.com", "Booking requested", "<p>hi</p>")

	assert.Equal(t, []string{"bookings@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"carol@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Booking requested"}, msg.GetHeader("Subject"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, "carol@example.com", "s", "b"), context.Canceled)
}

func TestCloudinaryUploaderParams(t *testing.T) {
	u, err := NewCloudinaryUploader(config.CloudinaryConfig{
		CloudName: "demo", APIKey: "key", APISecret: "secret", Folder: "providers", UploadPreset: "thumbs",
	})
	require.NoError(t, err)

	p := u.params("provider-1")
	assert.Equal(t, "provider-1", p.PublicID)
	assert.Equal(t, "providers", p.Folder)
	assert.Equal(t, "thumbs", p.UploadPreset)
}

func TestFormatInZone(t *testing.T) {
	at := time.Date(2024, time.June, 3, 4, 30, 0, 0, time.UTC)
	assert.Equal(t, "Mon 03 Jun 2024 04:30 UTC", FormatInZone(at, nil))
	assert.Equal(t, "Mon 03 Jun 2024 10:00 IST", FormatInZone(at, time.FixedZone("IST", 5*3600+1800)))
}
