package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time-of-day component, matching the
// DATE columns of the todo schema.
type Date struct {
	time.Time
}

// NewDate builds a Date from a year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// Today returns the current local date.
func Today() Date {
	y, m, d := time.Now().Date()
	return NewDate(y, m, d)
}

// Never is the sentinel end date meaning "no deadline".
func Never() Date {
	return NewDate(9999, time.December, 31)
}

// ParseDate accepts YYYY-MM-DD and YYYY/MM/DD; both separators normalize
// to the same layout before parsing.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, strings.ReplaceAll(s, "/", "-"), time.Local)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// Equal reports whether two dates name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Format(dateLayout) == other.Format(dateLayout)
}

// MarshalJSON renders the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts the same forms as ParseDate.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner. With parseTime enabled the MySQL driver
// hands DATE columns over as time.Time.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Format(dateLayout), nil
}
