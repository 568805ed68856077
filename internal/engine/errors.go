package engine

import "errors"

// ErrMissingTool indicates a required external binary (ffmpeg or ffprobe)
// was not found during pre-flight.
var ErrMissingTool = errors.New("required tool not found")

// ErrEngineFailed indicates an external engine process exited with a
// failure status. The wrapped message carries the process output verbatim.
var ErrEngineFailed = errors.New("audio engine invocation failed")

// ErrProbeParse indicates the probe returned output that could not be
// parsed as a duration.
var ErrProbeParse = errors.New("unparsable probe duration")
