package pipeline

import "os"

// tempDirCreator creates scratch directories for intermediate files.
type tempDirCreator interface {
	MkdirTemp(dir, pattern string) (string, error)
}

// fileRemover removes files and directories.
type fileRemover interface {
	RemoveAll(path string) error
}

// --- Default implementations using real OS functions ---

// osTempDirCreator implements tempDirCreator using os.MkdirTemp.
type osTempDirCreator struct{}

func (osTempDirCreator) MkdirTemp(dir, pattern string) (string, error) {
	return os.MkdirTemp(dir, pattern)
}

// osFileRemover implements fileRemover using os.RemoveAll.
type osFileRemover struct{}

func (osFileRemover) RemoveAll(path string) error {
	return os.RemoveAll(path)
}
