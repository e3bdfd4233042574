package fedi

import (
	"fmt"
	"time"
)

const statusDateLayout = "2006-01-02"

// StatusDate is an account's last_status_at value. Current servers return a
// plain date, older ones a full timestamp, and accounts that never posted
// return null. It always marshals back to the plain date form.
type StatusDate time.Time

func (d StatusDate) Time() time.Time {
	return time.Time(d)
}

func (d StatusDate) IsZero() bool {
	return d.Time().IsZero()
}

func (d StatusDate) String() string {
	if d.IsZero() {
		return ""
	}

	return d.Time().Format(statusDateLayout)
}

// MarshalJSON implements the json.Marshaler interface.
func (d StatusDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return []byte(fmt.Sprintf("\"%s\"", d.Time().Format(statusDateLayout))), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *StatusDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = StatusDate{}
		return nil
	}

	if len(data) < 2 || data[0] != '"' {
		return fmt.Errorf("invalid status date: %s", string(data))
	}

	st := string(data[1 : len(data)-1])

	dt, err := time.Parse(statusDateLayout, st)
	if err == nil {
		*d = StatusDate(dt)
		return nil
	}

	dt, err = time.Parse(time.RFC3339, st)
	if err != nil {
		return err
	}

	*d = StatusDate(dt)

	return nil
}
