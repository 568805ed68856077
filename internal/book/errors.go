package book

import "errors"

// ErrNoInput indicates the input directory contains no supported audio files.
var ErrNoInput = errors.New("no audio files found in input directory")
