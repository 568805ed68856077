package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-audio/wav"
)

// ProbeDuration returns the duration of path in seconds.
//
// Lossless intermediates are WAV files the pipeline itself wrote, so their
// RIFF headers are read directly instead of spawning ffprobe for every
// measurement; anything else (or a malformed header) goes through ffprobe.
func (e *FFmpegEngine) ProbeDuration(ctx context.Context, path string) (float64, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		if seconds, err := e.wavDuration(path); err == nil {
			return seconds, nil
		}
	}
	return e.ffprobeDuration(ctx, path)
}

// wavDuration reads the duration straight from a WAV header.
func (e *FFmpegEngine) wavDuration(path string) (float64, error) {
	f, err := e.files.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, fmt.Errorf("no RIFF/WAVE header in %s", path)
	}
	d, err := dec.Duration()
	if err != nil {
		return 0, err
	}
	// A readable header with zero duration means the decode went wrong;
	// let ffprobe have the final word.
	if d <= 0 {
		return 0, fmt.Errorf("header reports zero duration for %s", path)
	}
	return d.Seconds(), nil
}

// ffprobeDuration asks ffprobe for the container-level duration.
func (e *FFmpegEngine) ffprobeDuration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=nw=1:nk=1",
		path,
	}
	output, err := e.cmd.CombinedOutput(ctx, e.ffprobePath, args)
	if err != nil {
		return 0, fmt.Errorf("%w: probe: %v\nOutput: %s", ErrEngineFailed, err, string(output))
	}

	raw := strings.TrimSpace(string(output))
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q for %s", ErrProbeParse, raw, path)
	}
	return seconds, nil
}
