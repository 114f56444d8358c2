package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/meinhoongagan/booking-marketplace/apperr"
)

// WorkingDays marks which weekdays a service can be booked on.
// It is stored and transmitted as a JSON object keyed by lower-case weekday name.
type WorkingDays map[time.Weekday]bool

// weekOrder is the canonical key order used when encoding.
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// ParseWeekday accepts full English weekday names or three-letter abbreviations in any case.
func ParseWeekday(name string) (time.Weekday, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if key == full || key == full[:3] {
			return d, true
		}
	}
	return 0, false
}

// WeekdayKey is the canonical serialized name of a weekday.
func WeekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// Any reports whether at least one day is marked as working.
func (w WorkingDays) Any() bool {
	for _, on := range w {
		if on {
			return true
		}
	}
	return false
}

// Encode serializes the set with keys in Monday..Sunday order.
func (w WorkingDays) Encode() string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, d := range weekOrder {
		on, ok := w[d]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		fmt.Fprintf(&buf, "%q:%t", WeekdayKey(d), on)
	}
	buf.WriteByte('}')
	return buf.String()
}

// DecodeWorkingDays parses the serialized form produced by Encode. Unknown day names,
// duplicate days, non-boolean values and null fail with apperr.ErrDataFormat.
func DecodeWorkingDays(data []byte) (WorkingDays, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, apperr.DataFormat("working days: %v", err)
	}
	if tok == nil {
		return nil, apperr.DataFormat("working days: null payload")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, apperr.DataFormat("working days: expected an object")
	}

	// Walk the keys one by one; decoding into a map would silently keep the last duplicate.
	days := make(WorkingDays, 7)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, apperr.DataFormat("working days: %v", err)
		}
		name, _ := tok.(string)
		d, ok := ParseWeekday(name)
		if !ok {
			return nil, apperr.DataFormat("working days: unknown day %q", name)
		}
		if _, dup := days[d]; dup {
			return nil, apperr.DataFormat("working days: %s given more than once", WeekdayKey(d))
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, apperr.DataFormat("working days: %v", err)
		}
		var on bool
		if err := json.Unmarshal(value, &on); err != nil || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return nil, apperr.DataFormat("working days: %q must be true or false", name)
		}
		days[d] = on
	}

	if _, err := dec.Token(); err != nil {
		return nil, apperr.DataFormat("working days: %v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, apperr.DataFormat("working days: trailing data after object")
	}
	return days, nil
}

func (w WorkingDays) MarshalJSON() ([]byte, error) {
	return []byte(w.Encode()), nil
}

func (w *WorkingDays) UnmarshalJSON(data []byte) error {
	days, err := DecodeWorkingDays(data)
	if err != nil {
		return err
	}
	*w = days
	return nil
}

// Value implements the driver.Valuer interface
func (w WorkingDays) Value() (driver.Value, error) {
	return w.Encode(), nil
}

// Scan implements the sql.Scanner interface
func (w *WorkingDays) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return apperr.DataFormat("working days: unsupported column type %T", value)
	}

	days, err := DecodeWorkingDays(data)
	if err != nil {
		return err
	}
	*w = days
	return nil
}
