package utils

import (
	"testing"
	"time"
)

func TestEasternLocation(t *testing.T) {
	name := Eastern.String()
	if name != "America/New_York" && name != "EST" {
		t.Errorf("Eastern location = %s, want America/New_York or EST", name)
	}
}

func TestParseSECDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-11-14", "2024-11-14"},
		{"2024-11-14T16:05:12-05:00", "2024-11-14"},
		{"2024-11-14T21:05:12.000Z", "2024-11-14"},
		{"11/14/2024", "2024-11-14"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseSECDate(tt.input)
			if got.IsZero() {
				t.Fatalf("ParseSECDate(%q) returned zero time", tt.input)
			}
			if FormatDate(got) != tt.want {
				t.Errorf("ParseSECDate(%q) = %s, want %s", tt.input, FormatDate(got), tt.want)
			}
		})
	}

	if !ParseSECDate("not a date").IsZero() {
		t.Error("ParseSECDate should return zero time for garbage input")
	}
}

func TestFormatDateEastern(t *testing.T) {
	// 02:00 UTC is still the previous evening in New York
	utc := time.Date(2024, 11, 15, 2, 0, 0, 0, time.UTC)
	if got := FormatDateEastern(utc); got != "2024-11-14" {
		t.Errorf("FormatDateEastern = %s, want 2024-11-14", got)
	}
}

func TestDaysAgo(t *testing.T) {
	now := time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC)
	if got := DaysAgo(now, 30); got != "2024-11-01" {
		t.Errorf("DaysAgo(30) = %s, want 2024-11-01", got)
	}
}
