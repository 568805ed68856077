package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Compile-time interface implementation check.
var _ Engine = (*FFmpegEngine)(nil)

// filterChain is the fixed cleaning and loudness-conditioning chain, in
// dependency order: band-limiting and click removal first, spectral denoise,
// then compression and loudness normalization over the denoised signal (so
// noise is never normalized up), a limiter below the true-peak ceiling, and
// finally head/tail silence trimming. Interior silence is preserved.
var filterChain = strings.Join([]string{
	"highpass=f=80",
	"lowpass=f=12000",
	"adeclick",
	"afftdn=nf=-35",
	"acompressor=threshold=-18dB:ratio=2:attack=5:release=250",
	"loudnorm=I=-20:LRA=11:TP=-3.0",
	"alimiter=limit=0.7",
	"silenceremove=start_periods=1:start_threshold=-50dB:start_duration=0:stop_periods=-1:stop_threshold=-50dB:stop_duration=0",
}, ",")

// mp3EncodeArgs are the retail encode settings: constant bitrate LAME,
// no Xing/VBR index table, ID3v2.3 tags, source metadata copied forward.
func mp3EncodeArgs(channels int, bitrate string) []string {
	return []string{
		"-ac", strconv.Itoa(channels),
		"-ar", "44100",
		"-c:a", "libmp3lame",
		"-b:a", bitrate,
		"-compression_level", "0",
		"-write_xing", "0",
		"-id3v2_version", "3",
		"-map_metadata", "0",
	}
}

// FFmpegEngine implements Engine by invoking ffmpeg and ffprobe.
type FFmpegEngine struct {
	ffmpegPath  string
	ffprobePath string

	// Injectable dependencies (default to OS implementations).
	cmd   commandRunner
	files fileOpener
}

// Option configures an FFmpegEngine.
type Option func(*FFmpegEngine)

// WithCommandRunner sets the command runner (for testing).
func WithCommandRunner(r commandRunner) Option {
	return func(e *FFmpegEngine) {
		e.cmd = r
	}
}

// WithFileOpener sets the file opener used for native WAV probing (for testing).
func WithFileOpener(f fileOpener) Option {
	return func(e *FFmpegEngine) {
		e.files = f
	}
}

// New creates an FFmpegEngine using the given tool paths.
func New(tools Tools, opts ...Option) *FFmpegEngine {
	e := &FFmpegEngine{
		ffmpegPath:  tools.FFmpeg,
		ffprobePath: tools.FFprobe,
		cmd:         osCommandRunner{},
		files:       osFileOpener{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ApplyFilterChain runs the cleaning chain over src into a pcm_s16le file.
func (e *FFmpegEngine) ApplyFilterChain(ctx context.Context, src, dst string, channels int) error {
	args := []string{
		"-y",
		"-i", src,
		"-ac", strconv.Itoa(channels),
		"-ar", "44100",
		"-af", filterChain,
		"-c:a", "pcm_s16le",
		dst,
	}
	return e.run(ctx, "clean", args)
}

// AddRoomTone wraps src in tone seconds of synthesized silence at head and
// tail: an anullsrc lead-in concatenated before the signal, and apad after.
func (e *FFmpegEngine) AddRoomTone(ctx context.Context, src, dst string, channels int, tone float64) error {
	layout := "mono"
	if channels == 2 {
		layout = "stereo"
	}
	args := []string{
		"-y",
		"-f", "lavfi",
		"-t", formatSeconds(tone),
		"-i", "anullsrc=r=44100:cl=" + layout,
		"-i", src,
		"-filter_complex", fmt.Sprintf("[0:a][1:a]concat=n=2:v=0:a=1,apad=pad_dur=%s", formatSeconds(tone)),
		"-c:a", "pcm_s16le",
		dst,
	}
	return e.run(ctx, "pad", args)
}

// TrimAndEncode cuts [start, start+length) from src and encodes it to CBR MP3.
func (e *FFmpegEngine) TrimAndEncode(ctx context.Context, src, dst string, start, length float64, channels int, bitrate string) error {
	args := []string{
		"-y",
		"-ss", formatSeconds(start),
		"-t", formatSeconds(length),
		"-i", src,
	}
	args = append(args, mp3EncodeArgs(channels, bitrate)...)
	args = append(args, dst)
	return e.run(ctx, "encode", args)
}

// run executes ffmpeg and wraps any failure with the captured output.
func (e *FFmpegEngine) run(ctx context.Context, op string, args []string) error {
	output, err := e.cmd.CombinedOutput(ctx, e.ffmpegPath, args)
	if err != nil {
		return fmt.Errorf("%w: %s: %v\nOutput: %s", ErrEngineFailed, op, err, string(output))
	}
	return nil
}

// formatSeconds renders a seconds value for ffmpeg arguments without
// trailing zeros ("2" rather than "2.000000").
func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
