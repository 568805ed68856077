// Package pipeline drives the audio engine through the per-item assembly
// sequence: clean, pad with room tone, measure, segment, encode. It owns
// index allocation across the batch and the scratch-file lifecycle; all
// actual audio mutation happens inside the engine.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/wanderoffski/acxbatch/internal/book"
	"github.com/wanderoffski/acxbatch/internal/engine"
	"github.com/wanderoffski/acxbatch/internal/format"
	"github.com/wanderoffski/acxbatch/internal/segment"
)

// sampleSeconds caps the promotional excerpt length.
const sampleSeconds = 300

// sampleName is the fixed filename of the promotional excerpt.
const sampleName = "Retail_Sample.mp3"

// Params is the encode and segmentation policy shared by every item in a run.
type Params struct {
	Channels   int     // 1 or 2.
	Bitrate    string  // CBR MP3 bitrate, e.g. "256k".
	MaxSeconds float64 // Split threshold for a single output file.
	Overlap    float64 // Continuity overlap at split boundaries.
	RoomTone   float64 // Seconds of silence added at head and tail.
}

// Output is one emitted file. Index is globally unique and strictly
// increasing across the batch in emission order.
type Output struct {
	Index int
	Title string
	Path  string
}

// Report summarizes a completed run.
type Report struct {
	Outputs []Output
	Sample  string // Path of the promotional excerpt; empty if none produced.
}

// ProgressFunc is a callback for per-item progress messages.
// Set to nil to suppress progress output.
type ProgressFunc func(msg string)

// Assembler turns ordered book items into numbered output files.
type Assembler struct {
	engine   engine.Engine
	outDir   string
	params   Params
	progress ProgressFunc

	// Injectable dependencies (default to OS implementations).
	tempDir tempDirCreator
	files   fileRemover
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithProgress sets a callback for per-item progress messages.
func WithProgress(fn ProgressFunc) Option {
	return func(a *Assembler) {
		a.progress = fn
	}
}

// WithTempDirCreator sets the scratch directory creator (for testing).
func WithTempDirCreator(t tempDirCreator) Option {
	return func(a *Assembler) {
		a.tempDir = t
	}
}

// WithFileRemover sets the file remover (for testing).
func WithFileRemover(f fileRemover) Option {
	return func(a *Assembler) {
		a.files = f
	}
}

// New creates an Assembler writing outputs to outDir.
func New(eng engine.Engine, outDir string, params Params, opts ...Option) *Assembler {
	a := &Assembler{
		engine:  eng,
		outDir:  outDir,
		params:  params,
		tempDir: osTempDirCreator{},
		files:   osFileRemover{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run processes every item in order, threading the global output index
// through the batch, and extracts the retail sample from the first emitted
// file. Items are strictly sequential: each engine call depends on the
// previous stage's file, and index allocation depends on how many segments
// earlier items emitted. Any failure aborts the run; outputs already
// written by completed items stay on disk.
func (a *Assembler) Run(ctx context.Context, items []book.Item) (Report, error) {
	padWidth := book.PadWidth(len(items))

	var report Report
	index := 1
	for _, item := range items {
		outputs, err := a.AssembleItem(ctx, item, index, padWidth)
		if err != nil {
			return report, err
		}
		index += len(outputs)
		report.Outputs = append(report.Outputs, outputs...)
	}

	if len(report.Outputs) > 0 {
		sample, err := a.ExtractSample(ctx, report.Outputs[0].Path)
		if err != nil {
			return report, err
		}
		report.Sample = sample
	}

	return report, nil
}

// AssembleItem runs the full stage sequence for one item and returns the
// files it emitted, numbered from startIndex. Intermediates live in a
// scratch directory that is removed on every exit path.
func (a *Assembler) AssembleItem(ctx context.Context, item book.Item, startIndex, padWidth int) ([]Output, error) {
	scratch, err := a.tempDir.MkdirTemp("", "acxbatch-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	defer func() { _ = a.files.RemoveAll(scratch) }()

	cleaned := filepath.Join(scratch, "clean.wav")
	padded := filepath.Join(scratch, "padded.wav")

	if err := a.engine.ApplyFilterChain(ctx, item.Path, cleaned, a.params.Channels); err != nil {
		return nil, fmt.Errorf("%s: %w", item.Title, err)
	}
	if err := a.engine.AddRoomTone(ctx, cleaned, padded, a.params.Channels, a.params.RoomTone); err != nil {
		return nil, fmt.Errorf("%s: %w", item.Title, err)
	}

	duration, err := a.engine.ProbeDuration(ctx, padded)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", item.Title, err)
	}

	segments, err := segment.Plan(duration, a.params.MaxSeconds, a.params.Overlap)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", item.Title, err)
	}

	if a.progress != nil {
		a.progress(fmt.Sprintf("%s: %s padded, %d part(s)", item.Title, format.Seconds(duration), len(segments)))
	}

	outputs := make([]Output, 0, len(segments))
	for _, seg := range segments {
		index := startIndex + len(outputs)
		dest := filepath.Join(a.outDir, book.OutputName(index, padWidth, item.Title, seg.Suffix()))

		err := a.engine.TrimAndEncode(ctx, padded, dest, seg.Start, seg.Length, a.params.Channels, a.params.Bitrate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", item.Title, err)
		}
		outputs = append(outputs, Output{Index: index, Title: item.Title, Path: dest})
	}

	return outputs, nil
}

// ExtractSample cuts the promotional excerpt from the first emitted output:
// it skips the head room tone and keeps up to 300 seconds, re-encoded under
// the same policy as the chapters.
func (a *Assembler) ExtractSample(ctx context.Context, firstOutput string) (string, error) {
	dest := filepath.Join(a.outDir, sampleName)
	err := a.engine.TrimAndEncode(ctx, firstOutput, dest, a.params.RoomTone, sampleSeconds, a.params.Channels, a.params.Bitrate)
	if err != nil {
		return "", fmt.Errorf("retail sample: %w", err)
	}
	return dest, nil
}
