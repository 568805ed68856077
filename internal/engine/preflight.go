package engine

import (
	"fmt"
	"strings"
)

// Binary names looked up during pre-flight.
const (
	binFFmpeg  = "ffmpeg"
	binFFprobe = "ffprobe"
)

// Environment variables overriding tool discovery.
const (
	envFFmpegPath  = "FFMPEG_PATH"
	envFFprobePath = "FFPROBE_PATH"
)

// Tools holds the resolved paths of the external binaries the engine drives.
type Tools struct {
	FFmpeg  string
	FFprobe string
}

// ResolveTools locates ffmpeg and ffprobe before any processing starts.
// An environment override (FFMPEG_PATH / FFPROBE_PATH) wins; otherwise the
// binary must be on PATH. A missing tool is fatal: the whole batch depends
// on both, so it fails here rather than mid-run.
func ResolveTools(getenv func(string) string, lookPath func(string) (string, error)) (Tools, error) {
	ffmpegPath, err := resolveTool(binFFmpeg, getenv(envFFmpegPath), lookPath)
	if err != nil {
		return Tools{}, err
	}
	ffprobePath, err := resolveTool(binFFprobe, getenv(envFFprobePath), lookPath)
	if err != nil {
		return Tools{}, err
	}
	return Tools{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

// resolveTool returns the override if set, else the PATH lookup result.
func resolveTool(name, override string, lookPath func(string) (string, error)) (string, error) {
	if override != "" {
		return override, nil
	}
	path, err := lookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s (install ffmpeg and ffprobe, or set %s_PATH)",
			ErrMissingTool, name, strings.ToUpper(name))
	}
	return path, nil
}
