package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wanderoffski/acxbatch/internal/book"
	"github.com/wanderoffski/acxbatch/internal/config"
	"github.com/wanderoffski/acxbatch/internal/engine"
	"github.com/wanderoffski/acxbatch/internal/pipeline"
)

// RootCmd creates the acxbatch command. The env parameter provides
// injectable dependencies for testing.
func RootCmd(env *Env, version string) *cobra.Command {
	var (
		inputDir   string
		outputDir  string
		channels   string
		bitrate    string
		roomTone   float64
		maxMinutes float64
		overlap    float64
		opening    string
		closing    string
		quiet      bool
	)

	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "acxbatch",
		Short: "Batch-process raw audiobook chapters into retail-ready MP3s",
		Long: `Batch-process a directory of raw chapter recordings (plus optional
opening/closing credit tracks) into numbered, loudness-conditioned,
retailer-compliant MP3s, along with a retail sample excerpt.

Each file is cleaned and loudness-normalized, wrapped in room tone,
split into parts when it exceeds the maximum length, and encoded to
constant-bitrate MP3. Requires ffmpeg and ffprobe on PATH.`,
		Example: `  acxbatch --input-dir raw/                       # defaults: mono, 256k CBR
  acxbatch --input-dir raw/ --channels stereo --bitrate 320k
  acxbatch --input-dir raw/ --opening raw/studio_intro.wav`,
		Version: version,
		// Silence Cobra's default error/usage printing; main handles it.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := env.ConfigLoader.Load(cmd.Context())
			if err != nil {
				return err
			}

			// Flags beat config-file and environment values, but only when
			// actually set on the command line.
			cfg.InputDir = inputDir
			cfg.Opening = opening
			cfg.Closing = closing
			flags := cmd.Flags()
			if flags.Changed("output-dir") {
				cfg.OutputDir = outputDir
			}
			if flags.Changed("channels") {
				cfg.Channels = channels
			}
			if flags.Changed("bitrate") {
				cfg.Bitrate = bitrate
			}
			if flags.Changed("room-tone") {
				cfg.RoomTone = roomTone
			}
			if flags.Changed("max-minutes") {
				cfg.MaxMinutes = maxMinutes
			}
			if flags.Changed("overlap") {
				cfg.Overlap = overlap
			}

			return runBatch(cmd.Context(), env, cfg, quiet)
		},
	}

	cmd.Flags().StringVar(&inputDir, "input-dir", "", "Directory with raw chapter/credits audio")
	cmd.Flags().StringVar(&outputDir, "output-dir", defaults.OutputDir, "Destination for processed MP3s")
	cmd.Flags().StringVar(&channels, "channels", defaults.Channels, "Channel layout: mono or stereo")
	cmd.Flags().StringVar(&bitrate, "bitrate", defaults.Bitrate, "MP3 CBR bitrate (e.g. 192k, 256k, 320k)")
	cmd.Flags().Float64Var(&roomTone, "room-tone", defaults.RoomTone, "Seconds of room tone added at head and tail (1-5)")
	cmd.Flags().Float64Var(&maxMinutes, "max-minutes", defaults.MaxMinutes, "Max length of a single file before splitting (minutes)")
	cmd.Flags().Float64Var(&overlap, "overlap", defaults.Overlap, "Seconds of overlap kept at split boundaries for continuity")
	cmd.Flags().StringVar(&opening, "opening", "", "Explicit path for opening credits")
	cmd.Flags().StringVar(&closing, "closing", "", "Explicit path for closing credits")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress per-file progress output")

	_ = cmd.MarkFlagRequired("input-dir")

	return cmd
}

// runBatch validates the configuration, resolves the external tools, and
// drives the assembly pipeline over the classified inputs.
func runBatch(ctx context.Context, env *Env, cfg config.Config, quiet bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Pre-flight: both tools must exist before any processing starts.
	tools, err := engine.ResolveTools(env.Getenv, env.LookPath)
	if err != nil {
		return err
	}

	items, err := book.Classify(cfg.InputDir, cfg.Opening, cfg.Closing)
	if err != nil {
		return err
	}

	if err := env.MkdirAll(cfg.OutputDir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	params := pipeline.Params{
		Channels:   cfg.ChannelCount(),
		Bitrate:    cfg.Bitrate,
		MaxSeconds: cfg.MaxSeconds(),
		Overlap:    cfg.Overlap,
		RoomTone:   cfg.RoomTone,
	}

	opts := []pipeline.Option{}
	if !quiet {
		opts = append(opts, pipeline.WithProgress(func(msg string) {
			fmt.Fprintln(env.Stderr, msg)
		}))
	}

	asm := pipeline.New(env.EngineFactory.NewEngine(tools), cfg.OutputDir, params, opts...)

	report, err := asm.Run(ctx, items)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "Created %d section file(s) in %s\n", len(report.Outputs), cfg.OutputDir)
	writeReport(env.Stdout, report, env.FileSize)
	if report.Sample != "" {
		fmt.Fprintf(env.Stdout, "Retail sample: %s\n", report.Sample)
	}
	return nil
}
