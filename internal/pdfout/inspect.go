package pdfout

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageInfo is the media box size of one page in points.
type PageInfo struct {
	Number int     `json:"number"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Info summarizes a PDF read back with pdfcpu.
type Info struct {
	PageCount int        `json:"page_count"`
	Pages     []PageInfo `json:"pages"`
	// ValidationError is empty when the document passed validation.
	ValidationError string `json:"validation_error,omitempty"`
}

// Valid reports whether validation passed.
func (i *Info) Valid() bool { return i.ValidationError == "" }

// Inspect reads a PDF, validates it and collects page sizes.
func Inspect(rs io.ReadSeeker) (*Info, error) {
	ctx, err := api.ReadContext(rs, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("counting pages: %w", err)
	}

	info := &Info{PageCount: ctx.PageCount}
	if err := api.ValidateContext(ctx); err != nil {
		info.ValidationError = err.Error()
	}

	for i := 1; i <= ctx.PageCount; i++ {
		_, _, inh, err := ctx.PageDict(i, false)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i, err)
		}
		page := PageInfo{Number: i}
		if inh != nil && inh.MediaBox != nil {
			page.Width = inh.MediaBox.Width()
			page.Height = inh.MediaBox.Height()
		}
		info.Pages = append(info.Pages, page)
	}
	return info, nil
}

// InspectFile is Inspect for a file on disk.
func InspectFile(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Inspect(f)
}
