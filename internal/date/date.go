package date

import (
	"fmt"
	"strings"
	"time"
)

// Format is the only accepted layout for canonical dates.
const Format = "2006-01-02"

// Date is a calendar day. It is comparable and safe to use as a map key.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month and day.
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{t.Year(), t.Month(), t.Day()}
}

// Parse trims surrounding whitespace and parses str strictly as YYYY-MM-DD.
func Parse(str string) (Date, error) {
	s := strings.TrimSpace(str)
	t, err := time.Parse(Format, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after x.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(Format) }
