// Package engine models the external audio-processing capability the
// pipeline drives: ffmpeg for signal work, ffprobe for measurement. The
// pipeline never touches audio samples itself; it only requests declarative
// operations through the Engine interface, which keeps the assembly logic
// testable against a fake that records invocations.
package engine

import "context"

// Engine is the capability boundary to the external audio processor.
// Implementations produce a new media file per operation (or a measurement)
// and are assumed deterministic. Every call blocks until the underlying
// process exits; cancellation is via ctx only.
type Engine interface {
	// ApplyFilterChain runs the fixed cleaning/loudness chain over src,
	// writing a lossless 44.1 kHz intermediate at the given channel count.
	ApplyFilterChain(ctx context.Context, src, dst string, channels int) error

	// AddRoomTone synthesizes tone seconds of silence at the item's channel
	// layout, prepends it to src, and appends the same amount of trailing
	// silence, writing a lossless intermediate.
	AddRoomTone(ctx context.Context, src, dst string, channels int, tone float64) error

	// TrimAndEncode cuts [start, start+length) out of src and encodes it to
	// CBR MP3 at the given bitrate, channel count, and 44.1 kHz.
	TrimAndEncode(ctx context.Context, src, dst string, start, length float64, channels int, bitrate string) error

	// ProbeDuration returns the total duration of path in seconds.
	ProbeDuration(ctx context.Context, path string) (float64, error)
}
