package segment_test

import (
	"errors"
	"math"
	"testing"

	"github.com/wanderoffski/acxbatch/internal/segment"
)

func TestPlan_SingleSegment(t *testing.T) {
	t.Parallel()

	segs, err := segment.Plan(60, 120, 1)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("Plan() = %d segments, want 1", len(segs))
	}
	s := segs[0]
	if s.Start != 0 || s.Length != 60 {
		t.Errorf("segment = start %v length %v, want start 0 length 60", s.Start, s.Length)
	}
	if s.Suffix() != "" {
		t.Errorf("Suffix() = %q, want empty for single part", s.Suffix())
	}
}

func TestPlan_MultiPart(t *testing.T) {
	t.Parallel()

	// step = 3599; ceil(7199/3599) = 3 parts. No part may exceed the max
	// length, so a two-hour recording lands at 3600/3600/2 rather than
	// stretching the final part.
	segs, err := segment.Plan(7200, 3600, 1)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("Plan() = %d segments, want 3", len(segs))
	}

	want := []struct {
		start, length float64
		suffix        string
	}{
		{0, 3600, "_Part01"},
		{3599, 3600, "_Part02"},
		{7198, 2, "_Part03"},
	}
	for i, w := range want {
		if segs[i].Start != w.start || segs[i].Length != w.length {
			t.Errorf("part %d = start %v length %v, want %v/%v",
				i+1, segs[i].Start, segs[i].Length, w.start, w.length)
		}
		if got := segs[i].Suffix(); got != w.suffix {
			t.Errorf("part %d Suffix() = %q, want %q", i+1, got, w.suffix)
		}
	}
}

func TestPlan_DegenerateDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration float64
	}{
		{"zero duration", 0},
		{"duration below overlap", 0.5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			segs, err := segment.Plan(tt.duration, 120, 1)
			if err != nil {
				t.Fatalf("Plan() error: %v", err)
			}
			if len(segs) != 1 {
				t.Fatalf("Plan() = %d segments, want 1", len(segs))
			}
			if segs[0].Start != 0 || segs[0].Length != tt.duration {
				t.Errorf("segment covers [%v, %v), want whole duration %v",
					segs[0].Start, segs[0].End(), tt.duration)
			}
		})
	}
}

func TestPlan_InvalidParameters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		maxLen  float64
		overlap float64
	}{
		{"zero max length", 0, 1},
		{"negative max length", -10, 1},
		{"overlap equals max", 120, 120},
		{"overlap exceeds max", 120, 200},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := segment.Plan(3600, tt.maxLen, tt.overlap)
			if !errors.Is(err, segment.ErrInvalidPlan) {
				t.Errorf("Plan() error = %v, want ErrInvalidPlan", err)
			}
		})
	}
}

// TestPlan_Totality verifies the coverage invariant over a spread of
// durations: at least one segment, starts advance by a constant step,
// consecutive segments overlap by exactly the configured amount, and the
// last segment ends at the total duration.
func TestPlan_Totality(t *testing.T) {
	t.Parallel()

	const (
		maxLen  = 3600.0
		overlap = 1.0
	)
	durations := []float64{0, 0.5, 1, 59.9, 3600, 3600.1, 4004, 7200, 7199, 100000}

	for _, duration := range durations {
		segs, err := segment.Plan(duration, maxLen, overlap)
		if err != nil {
			t.Fatalf("Plan(%v) error: %v", duration, err)
		}
		if len(segs) == 0 {
			t.Fatalf("Plan(%v) returned no segments", duration)
		}

		for i, s := range segs {
			if s.Part != i+1 || s.TotalParts != len(segs) {
				t.Errorf("Plan(%v) segment %d numbering = %d/%d", duration, i, s.Part, s.TotalParts)
			}
			if s.Length > maxLen {
				t.Errorf("Plan(%v) segment %d length %v exceeds max %v", duration, i, s.Length, maxLen)
			}
			if i > 0 {
				prev := segs[i-1]
				// Each segment starts overlap seconds before the previous ends.
				gap := s.Start - prev.End()
				if math.Abs(gap+overlap) > 1e-9 {
					t.Errorf("Plan(%v) segment %d start %v, previous end %v: overlap broken",
						duration, i, s.Start, prev.End())
				}
			}
		}

		last := segs[len(segs)-1]
		if math.Abs(last.End()-duration) > 1e-9 {
			t.Errorf("Plan(%v) last segment ends at %v, want %v", duration, last.End(), duration)
		}
	}
}
