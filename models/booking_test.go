package models

import (
	"testing"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/stretchr/testify/assert"
)

func TestBookingTransition(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		ok       bool
	}{
		{StatusRequested, StatusConfirmed, true},
		{StatusRequested, StatusCancelled, true},
		{StatusRequested, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusRequested, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusRequested, StatusRequested, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			b := &Booking{Status: tt.from}
			err := b.Transition(tt.to)
			if tt.ok {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, b.Status)
			} else {
				assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
				assert.Equal(t, tt.from, b.Status)
			}
		})
	}
}

func TestParseBookingStatus(t *testing.T) {
	s, ok := ParseBookingStatus("confirmed")
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, s)

	_, ok = ParseBookingStatus("pending")
	assert.False(t, ok)
}
