package book

import (
	"path/filepath"
	"regexp"
	"strings"
)

// slugFallback is used when normalization strips a name down to nothing.
const slugFallback = "Section"

// nonAlnumRe matches maximal runs of characters outside [A-Za-z0-9].
var nonAlnumRe = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Slug converts an arbitrary filename or title into a filesystem- and
// sort-safe form: the extension is stripped, every run of non-alphanumeric
// characters becomes a single underscore, and leading/trailing underscores
// are trimmed. Returns "Section" if nothing survives.
//
// Slug is total and idempotent: it never fails, and Slug(Slug(x)) == Slug(x).
func Slug(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	s := nonAlnumRe.ReplaceAllString(stem, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return slugFallback
	}
	return s
}
