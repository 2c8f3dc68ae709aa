package models

import (
	"bytes"
	"encoding/json"
	"time"

	"fleet/internal/utils"
)

// Date is a calendar day without a time component. It marshals as
// "YYYY-MM-DD" and a zero Date marshals as null.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(utils.FormatDate(d.Time))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := utils.ParseDate(s)
	if err != nil {
		// tolerate full timestamps from older clients
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
		t = NewDate(t).Time
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return utils.FormatDate(d.Time)
}
