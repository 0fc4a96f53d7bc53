package raster

import (
	"errors"
	"fmt"
)

// ErrToolMissing is returned when the external PDF rasterizer is not installed.
var ErrToolMissing = errors.New("pdftoppm not found: install poppler-utils or set SHEETS_PDFTOPPM_PATH")

// ErrNoPages is returned when a source yields no page images.
var ErrNoPages = errors.New("document has no pages")

// DecodeError reports a source document that could not be decoded.
type DecodeError struct {
	DocumentID string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding document %q: %v", e.DocumentID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
