package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdaysOnly() WorkingDays {
	return WorkingDays{
		time.Monday: true, time.Tuesday: true, time.Wednesday: true, time.Thursday: true,
		time.Friday: true, time.Saturday: false, time.Sunday: false,
	}
}

func TestWorkingDaysEncodeOrder(t *testing.T) {
	got := weekdaysOnly().Encode()
	assert.Equal(t,
		`{"monday":true,"tuesday":true,"wednesday":true,"thursday":true,"friday":true,"saturday":false,"sunday":false}`,
		got)
}

func TestWorkingDaysRoundTrip(t *testing.T) {
	cases := []WorkingDays{
		weekdaysOnly(),
		{time.Sunday: true},
		{time.Wednesday: false, time.Saturday: true},
		{},
	}

	for _, in := range cases {
		out, err := DecodeWorkingDays([]byte(in.Encode()))
		require.NoError(t, err)
		assert.Equal(t, in, out)

		value, err := in.Value()
		require.NoError(t, err)
		var scanned WorkingDays
		require.NoError(t, scanned.Scan(value))
		assert.Equal(t, in, scanned)
	}
}

func TestDecodeWorkingDaysAcceptsAliases(t *testing.T) {
	days, err := DecodeWorkingDays([]byte(`{"Mon":true,"TUESDAY":false,"sun":true}`))
	require.NoError(t, err)
	assert.Equal(t, WorkingDays{time.Monday: true, time.Tuesday: false, time.Sunday: true}, days)
}

func TestDecodeWorkingDaysMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `monday=true`},
		{"array", `["monday"]`},
		{"null", `null`},
		{"unknown day", `{"funday":true}`},
		{"string value", `{"monday":"yes"}`},
		{"number value", `{"monday":1}`},
		{"null value", `{"monday":null}`},
		{"duplicate after normalising", `{"monday":true,"Mon":false}`},
		{"same key twice", `{"monday":true,"monday":false}`},
		{"same key twice same value", `{"friday":true,"tuesday":true,"friday":true}`},
		{"truncated", `{"monday":true`},
		{"trailing data", `{"monday":true}{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeWorkingDays([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrDataFormat)
		})
	}
}

func TestWorkingDaysJSON(t *testing.T) {
	type payload struct {
		Days WorkingDays `json:"workingDays"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"workingDays":{"friday":true}}`), &p))
	assert.True(t, p.Days[time.Friday])

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"workingDays":{"friday":true}}`, string(data))

	err = json.Unmarshal([]byte(`{"workingDays":{"friday":"no"}}`), &p)
	assert.ErrorIs(t, err, apperr.ErrDataFormat)
}

func TestWorkingDaysScanRejectsGarbage(t *testing.T) {
	var w WorkingDays
	assert.ErrorIs(t, w.Scan(42), apperr.ErrDataFormat)
	assert.ErrorIs(t, w.Scan("{"), apperr.ErrDataFormat)
	require.NoError(t, w.Scan(nil))
	assert.Nil(t, w)
}
