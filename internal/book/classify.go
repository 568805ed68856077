package book

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Fixed titles for the credit tracks. These are literal labels, not slugs of
// the underlying filenames, so credits sort predictably across books.
const (
	OpeningTitle = "Opening_Credits"
	ClosingTitle = "Closing_Credits"
)

// supportedExtensions is the allow-list of audio container extensions the
// batch accepts, lowercase with leading dot.
var supportedExtensions = map[string]struct{}{
	".wav":  {},
	".mp3":  {},
	".flac": {},
	".m4a":  {},
	".aac":  {},
	".aiff": {},
	".aif":  {},
}

// Filename heuristics for credit detection, applied case-insensitively to
// the base name.
var (
	openingRe = regexp.MustCompile(`(?i)opening|intro`)
	closingRe = regexp.MustCompile(`(?i)closing|outro|credits`)
)

// Item is one logical unit in final book order: a display title plus the
// source file that produces it.
type Item struct {
	Title string // Slug or fixed credit label, used in output filenames.
	Path  string // Source audio file.
}

// SupportedExtension reports whether name carries an extension from the
// audio allow-list.
func SupportedExtension(name string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Classify scans dir (non-recursively) for supported audio files and
// arranges them in playback order: optional opening credits first, chapters
// in lexicographic filename order, optional closing credits last.
//
// Credits are detected by filename heuristics unless an explicit override
// path is supplied, in which case the override wins outright and need not
// appear in the scanned directory at all.
func Classify(dir, explicitOpening, explicitClosing string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	// ReadDir returns entries sorted by filename, which is the chapter order.
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !SupportedExtension(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInput, dir)
	}

	opening := explicitOpening
	if opening == "" {
		opening = firstMatch(files, openingRe)
	}
	closing := explicitClosing
	if closing == "" {
		closing = firstMatch(files, closingRe)
	}

	items := make([]Item, 0, len(files)+2)
	if opening != "" {
		items = append(items, Item{Title: OpeningTitle, Path: opening})
	}
	for _, f := range files {
		if f == opening || f == closing {
			continue
		}
		items = append(items, Item{Title: Slug(filepath.Base(f)), Path: f})
	}
	if closing != "" {
		items = append(items, Item{Title: ClosingTitle, Path: closing})
	}

	return items, nil
}

// firstMatch returns the first file whose base name matches re, or "".
func firstMatch(files []string, re *regexp.Regexp) string {
	for _, f := range files {
		if re.MatchString(filepath.Base(f)) {
			return f
		}
	}
	return ""
}
