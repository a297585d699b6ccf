package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestDayOfNormalizesToUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"already utc midnight",
			time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			"utc afternoon",
			time.Date(2026, time.January, 5, 15, 42, 7, 0, time.UTC),
			time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			"non-utc wall clock keeps its calendar day",
			time.Date(2026, time.January, 5, 1, 30, 0, 0, ist),
			time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			"non-utc just before local midnight",
			time.Date(2026, time.January, 5, 23, 59, 0, 0, ist),
			time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DayOf(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("DayOf(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("DayOf(%v) location = %v, want UTC", tt.in, got.Location())
			}
		})
	}
}

func TestDayOfAgreesWithParseDate(t *testing.T) {
	parsed, err := ParseDate("2026-01-05")
	if err != nil {
		t.Fatal(err)
	}
	ist := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2026, time.January, 5, 9, 0, 0, 0, ist)
	if !DayOf(local).Equal(DayOf(parsed)) {
		t.Errorf("DayOf(local %v) = %v, DayOf(parsed) = %v, want equal", local, DayOf(local), DayOf(parsed))
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-01-05")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}

	for _, bad := range []string{"05-01-2026", "2026/01/05", "tomorrow", ""} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidInput", bad, err)
		}
	}
}
