package planning

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar-day abstraction (this is a date-driven system)
// =============================================================================

// Date is a calendar day with no time-of-day component. All dates are
// normalized to midnight UTC so comparisons are purely calendar-based.
type Date struct {
	Time time.Time
}

const dateLayout = "2006-01-02"

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return Date{Time: t}, nil
}

func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{Time: d.Time.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{Time: d.Time.AddDate(0, n, 0)} }
func (d Date) AddYears(n int) Date  { return Date{Time: d.Time.AddDate(n, 0, 0)} }

// Properties
func (d Date) Year() int         { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int          { return d.Time.Day() }
func (d Date) IsZero() bool      { return d.Time.IsZero() }

func (d Date) String() string { return d.Time.Format(dateLayout) }

// =============================================================================
// DURATION - Elapsed whole calendar time between two dates
// =============================================================================

// Duration is elapsed whole calendar time. A partial month before the
// day-of-month anniversary is not counted.
//
// Invariant: TotalMonths == Years*12 + Months.
type Duration struct {
	Years       int
	Months      int
	TotalMonths int
}

// Between computes the elapsed calendar duration from start to end.
// Identical dates yield a zero duration. An end before start yields a
// negative duration; callers are expected to reject that upstream rather
// than rely on any clamping here.
func Between(start, end Date) Duration {
	years := end.Year() - start.Year()
	months := int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		months += 12
		years--
	}
	total := years*12 + months
	// Re-derive the split for negative spans so the invariant holds.
	if total < 0 {
		years = -((-total) / 12)
		months = -((-total) % 12)
	}
	return Duration{Years: years, Months: months, TotalMonths: total}
}

// Since computes the duration from start up to today.
func Since(start Date) Duration {
	return Between(start, Today())
}

// IsNegative reports whether the duration runs backwards (end before start).
func (d Duration) IsNegative() bool { return d.TotalMonths < 0 }

// IsZero reports a duration of less than one whole month.
func (d Duration) IsZero() bool { return d.TotalMonths == 0 }

// String renders "{n} year(s), {m} month(s)" with correct pluralization.
// A zero duration renders "Less than a month".
func (d Duration) String() string {
	if d.IsZero() {
		return "Less than a month"
	}
	return fmt.Sprintf("%s, %s", plural(d.Years, "year"), plural(d.Months, "month"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
