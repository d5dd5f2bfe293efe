// Package codec converts domain temporal values to and from the ISO-8601
// text the database stores. Encoding is total; decoding fails with
// *FormatError on malformed text and *UnknownVariantError when an
// enumeration name is not recognized (typically schema drift after a
// rollback). decode(encode(x)) == x for every valid x.
package codec

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the stored form of a calendar date.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the stored form of a local date-time, second
	// precision, no zone designator.
	DateTimeLayout = "2006-01-02T15:04:05"
	// TimeOfDayLayout is the stored form of a wall-clock time.
	TimeOfDayLayout = "15:04"
)

// FormatError reports stored text that does not match the expected layout.
type FormatError struct {
	Value string
	Want  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed value %q, expected %s", e.Value, e.Want)
}

// UnknownVariantError reports an enumeration name with no known variant.
type UnknownVariantError struct {
	Enum string
	Name string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown %s variant %q", e.Enum, e.Name)
}

// Date is a calendar date with day granularity.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns the instant at midnight local time on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

func (d Date) String() string {
	return EncodeDate(d)
}

// TimeOfDay is a wall-clock time with minute granularity.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (td TimeOfDay) String() string {
	return EncodeTimeOfDay(td)
}

// EncodeDate renders d as an ISO calendar date.
func EncodeDate(d Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DecodeDate parses an ISO calendar date. Only the canonical zero-padded
// form is accepted; time.Parse alone would also take "2026-3-4".
func DecodeDate(s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return Date{}, &FormatError{Value: s, Want: "YYYY-MM-DD"}
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return Date{}, &FormatError{Value: s, Want: "YYYY-MM-DD"}
	}
	return DateOf(t), nil
}

// EncodeDateTime renders t as an ISO local date-time at second precision.
// Sub-second components are dropped; callers that need a lossless round
// trip truncate with Truncate before storing.
func EncodeDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// DecodeDateTime parses an ISO local date-time in the local zone. Only
// the canonical zero-padded form is accepted.
func DecodeDateTime(s string) (time.Time, error) {
	if len(s) != len(DateTimeLayout) {
		return time.Time{}, &FormatError{Value: s, Want: "YYYY-MM-DDTHH:MM:SS"}
	}
	t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, &FormatError{Value: s, Want: "YYYY-MM-DDTHH:MM:SS"}
	}
	return t, nil
}

// EncodeTimeOfDay renders td as HH:MM.
func EncodeTimeOfDay(td TimeOfDay) string {
	return fmt.Sprintf("%02d:%02d", td.Hour, td.Minute)
}

// DecodeTimeOfDay parses an HH:MM wall-clock time. Only the canonical
// zero-padded form is accepted.
func DecodeTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != len(TimeOfDayLayout) {
		return TimeOfDay{}, &FormatError{Value: s, Want: "HH:MM"}
	}
	t, err := time.Parse(TimeOfDayLayout, s)
	if err != nil {
		return TimeOfDay{}, &FormatError{Value: s, Want: "HH:MM"}
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Truncate normalizes t to the precision the store persists: local zone,
// whole seconds.
func Truncate(t time.Time) time.Time {
	return t.In(time.Local).Truncate(time.Second)
}
