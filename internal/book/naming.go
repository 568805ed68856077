package book

import (
	"fmt"
	"strconv"
)

// outputExt is the extension of every emitted file; the batch always
// encodes to MP3.
const outputExt = ".mp3"

// PadWidth returns the zero-padding width shared by all output filenames in
// a run: max(2, digits(totalItems+2)).
//
// The +2 margin keeps indices aligned when items split into more segments
// than there were planned items. It is a heuristic carried over for naming
// compatibility, not a proven bound.
func PadWidth(totalItems int) int {
	width := len(strconv.Itoa(totalItems + 2))
	if width < 2 {
		width = 2
	}
	return width
}

// OutputName formats one output filename: a zero-padded global index, the
// item title, and an optional part suffix. Names built this way sort
// identically to playback order.
func OutputName(index, padWidth int, title, partSuffix string) string {
	return fmt.Sprintf("%0*d_%s%s%s", padWidth, index, title, partSuffix, outputExt)
}
