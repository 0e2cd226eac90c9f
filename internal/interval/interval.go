package interval

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ErrInvalidRange means a date failed to parse or check-in is not
// strictly before check-out.
var ErrInvalidRange = errors.New("invalid date range")

// Range is a half-open interval of calendar days [Start, End).
// Both bounds are UTC midnights; no timezone arithmetic is applied.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange parses two YYYY-MM-DD strings and validates start < end.
func NewRange(checkIn, checkOut string) (Range, error) {
	start, err := ParseDate(checkIn)
	if err != nil {
		return Range{}, err
	}
	end, err := ParseDate(checkOut)
	if err != nil {
		return Range{}, err
	}
	return NewRangeFromDates(start, end)
}

// NewRangeFromDates validates start < end on already-parsed dates.
func NewRangeFromDates(start, end time.Time) (Range, error) {
	if !start.Before(end) {
		return Range{}, fmt.Errorf("%w: check-in %s must be before check-out %s",
			ErrInvalidRange, start.Format(DateLayout), end.Format(DateLayout))
	}
	return Range{Start: start, End: end}, nil
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid YYYY-MM-DD date", ErrInvalidRange, s)
	}
	return t, nil
}

// Overlaps reports whether two half-open intervals intersect.
// Adjacent stays (one's end equals the other's start) do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Nights returns the number of nights the range covers.
func (r Range) Nights() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}
