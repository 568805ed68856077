// Package segment computes how a padded audio duration is split into
// retailer-sized parts. Consecutive parts intentionally overlap so that
// audio continuity survives a manual edit at a split boundary; the overlap
// is left in place for a human editor to trim, never deduplicated here.
package segment

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPlan indicates segmentation parameters that cannot produce a
// plan (non-positive max length, or overlap consuming the whole step).
var ErrInvalidPlan = errors.New("invalid segmentation parameters")

// Segment is one time slice of a padded source. All times are seconds.
type Segment struct {
	Start      float64 // Offset into the source.
	Length     float64 // Slice length; at most the configured max.
	Part       int     // 1-based part number.
	TotalParts int     // Part count for the whole source.
}

// End returns the exclusive end offset of the segment.
func (s Segment) End() float64 {
	return s.Start + s.Length
}

// Suffix returns the filename part suffix: empty for a single-part plan,
// "_PartNN" otherwise. The two-digit padding is fixed and independent of the
// batch-wide index padding.
func (s Segment) Suffix() string {
	if s.TotalParts <= 1 {
		return ""
	}
	return fmt.Sprintf("_Part%02d", s.Part)
}

// Plan splits duration into parts of at most maxLen seconds, each part
// after the first starting overlap seconds before the previous one ends.
//
// The part count is ceil(max(duration-overlap, 0) / (maxLen-overlap)), with
// a floor of one so even an empty source yields a slice covering it.
// Segment i starts at i*(maxLen-overlap) and runs min(maxLen, remaining).
// The last segment always ends exactly at duration.
func Plan(duration, maxLen, overlap float64) ([]Segment, error) {
	if maxLen <= 0 {
		return nil, fmt.Errorf("%w: max length %.3gs must be positive", ErrInvalidPlan, maxLen)
	}
	step := maxLen - overlap
	if step <= 0 {
		return nil, fmt.Errorf("%w: overlap %.3gs leaves no forward step below max %.3gs",
			ErrInvalidPlan, overlap, maxLen)
	}

	parts := int(math.Ceil(math.Max(duration-overlap, 0) / step))
	if parts < 1 {
		// Degenerate case: duration <= overlap still produces one part
		// covering the whole source, never a zero-length batch.
		parts = 1
	}

	segments := make([]Segment, 0, parts)
	for i := 0; i < parts; i++ {
		start := float64(i) * step
		segments = append(segments, Segment{
			Start:      start,
			Length:     math.Min(maxLen, duration-start),
			Part:       i + 1,
			TotalParts: parts,
		})
	}
	return segments, nil
}
