package engine

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// commandRunner executes external commands and returns their combined output.
type commandRunner interface {
	CombinedOutput(ctx context.Context, name string, args []string) ([]byte, error)
}

// fileOpener opens files for reading. Probing WAV headers needs seeking,
// so the opened handle must support it.
type fileOpener interface {
	Open(name string) (io.ReadSeekCloser, error)
}

// --- Default implementations using real OS functions ---

// osCommandRunner implements commandRunner using exec.CommandContext.
type osCommandRunner struct{}

func (osCommandRunner) CombinedOutput(ctx context.Context, name string, args []string) ([]byte, error) {
	// #nosec G204 -- name and args are built by the engine, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// osFileOpener implements fileOpener using os.Open.
type osFileOpener struct{}

func (osFileOpener) Open(name string) (io.ReadSeekCloser, error) {
	// #nosec G304 -- paths come from the pipeline's own scratch files
	return os.Open(name)
}
