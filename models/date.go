package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format for delivery dates
const DateLayout = "2006-01-02"

// Date is a calendar date with no time component. Delivery dates are
// day-granular: two orders due the same day are equally due, no matter
// what wall-clock time they were entered.
type Date struct {
	time.Time
}

// NewDate creates a Date for the given year, month and day
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String returns the date in YYYY-MM-DD form
func (d Date) String() string {
	return d.Format(DateLayout)
}

// DaysUntil returns the whole number of calendar days from now until d.
// Negative when d is in the past. Time of day never affects the count.
func (d Date) DaysUntil(now time.Time) int {
	today := DateOf(now)
	return int(d.Sub(today.Time).Hours() / 24)
}

// MarshalJSON encodes the date as a YYYY-MM-DD JSON string
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD JSON string
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so gorm can store the date
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner for date columns read back as strings
// (sqlite) or timestamps (postgres)
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) scanString(s string) error {
	// sqlite may round-trip a full timestamp depending on how the
	// column was written; take the date part only
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType tells gorm migrations to use a date column
func (Date) GormDataType() string {
	return "date"
}
