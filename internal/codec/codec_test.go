package codec_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fitlog/fitlog-cli/internal/codec"
)

func TestDateRoundTrip(t *testing.T) {
	t.Parallel()
	dates := []codec.Date{
		{Year: 2026, Month: time.January, Day: 1},
		{Year: 2026, Month: time.December, Day: 31},
		{Year: 2024, Month: time.February, Day: 29},
	}
	for _, d := range dates {
		got, err := codec.DecodeDate(codec.EncodeDate(d))
		if err != nil {
			t.Fatalf("decode %v: %v", d, err)
		}
		if got != d {
			t.Fatalf("round trip changed date: %v -> %v", d, got)
		}
	}
}

func TestDateTimeRoundTrip(t *testing.T) {
	t.Parallel()
	stamps := []time.Time{
		time.Date(2026, 3, 14, 7, 30, 5, 0, time.Local),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local),
		time.Date(2026, 12, 31, 23, 59, 59, 0, time.Local),
	}
	for _, x := range stamps {
		got, err := codec.DecodeDateTime(codec.EncodeDateTime(x))
		if err != nil {
			t.Fatalf("decode %v: %v", x, err)
		}
		if !got.Equal(x) {
			t.Fatalf("round trip changed instant: %v -> %v", x, got)
		}
	}
}

func TestDateTimeRoundTripAfterTruncate(t *testing.T) {
	t.Parallel()
	x := codec.Truncate(time.Date(2026, 3, 14, 7, 30, 5, 987654321, time.Local))
	got, err := codec.DecodeDateTime(codec.EncodeDateTime(x))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Equal(x) {
		t.Fatalf("round trip changed truncated instant: %v -> %v", x, got)
	}
}

func TestTimeOfDayRoundTrip(t *testing.T) {
	t.Parallel()
	times := []codec.TimeOfDay{
		{Hour: 0, Minute: 0},
		{Hour: 7, Minute: 30},
		{Hour: 23, Minute: 59},
	}
	for _, td := range times {
		got, err := codec.DecodeTimeOfDay(codec.EncodeTimeOfDay(td))
		if err != nil {
			t.Fatalf("decode %v: %v", td, err)
		}
		if got != td {
			t.Fatalf("round trip changed time: %v -> %v", td, got)
		}
	}
}

func TestDecodeMalformedValues(t *testing.T) {
	t.Parallel()
	if _, err := codec.DecodeDate("14/03/2026"); err == nil {
		t.Fatalf("expected format error for slash date")
	} else {
		var fe *codec.FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FormatError, got %T", err)
		}
	}
	if _, err := codec.DecodeDateTime("2026-03-14 07:30:05"); err == nil {
		t.Fatalf("expected format error for space separator")
	}
	if _, err := codec.DecodeTimeOfDay("7h30"); err == nil {
		t.Fatalf("expected format error for 7h30")
	}
}

func TestDecodeRejectsUnpaddedValues(t *testing.T) {
	t.Parallel()
	if _, err := codec.DecodeDate("2026-3-4"); err == nil {
		t.Fatalf("expected format error for unpadded date")
	} else {
		var fe *codec.FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FormatError, got %T", err)
		}
		if fe.Want != "YYYY-MM-DD" {
			t.Fatalf("unexpected want: %q", fe.Want)
		}
	}
	if _, err := codec.DecodeDateTime("2026-3-4T7:5:5"); err == nil {
		t.Fatalf("expected format error for unpadded date-time")
	}
	if _, err := codec.DecodeTimeOfDay("7:30"); err == nil {
		t.Fatalf("expected format error for unpadded time")
	} else {
		var fe *codec.FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FormatError, got %T", err)
		}
	}
}
