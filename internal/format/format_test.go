package format_test

import (
	"testing"
	"time"

	"github.com/wanderoffski/acxbatch/internal/format"
)

func TestDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input time.Duration
		want  string
	}{
		{name: "zero", input: 0, want: "00:00"},
		{name: "under a minute", input: 59 * time.Second, want: "00:59"},
		{name: "minutes and seconds", input: 5*time.Minute + 30*time.Second, want: "05:30"},
		{name: "exactly one hour", input: time.Hour, want: "01:00:00"},
		{name: "long chapter", input: time.Hour + 6*time.Minute + 44*time.Second, want: "01:06:44"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := format.Duration(tt.input)
			if got != tt.want {
				t.Errorf("Duration(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSeconds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{name: "zero", input: 0, want: "00:00"},
		{name: "rounds fractional seconds", input: 9.6, want: "00:10"},
		{name: "padded chapter", input: 4004, want: "01:06:44"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := format.Seconds(tt.input)
			if got != tt.want {
				t.Errorf("Seconds(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSize(t *testing.T) {
	t.Parallel()

	const (
		kb = 1024
		mb = 1024 * kb
	)

	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{name: "bytes", input: 512, want: "512 bytes"},
		{name: "kilobytes", input: 700 * kb, want: "700 KB"},
		{name: "megabytes", input: 50 * mb, want: "50.0 MB"},
		{name: "fractional megabytes", input: mb + mb/2, want: "1.5 MB"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := format.Size(tt.input)
			if got != tt.want {
				t.Errorf("Size(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
