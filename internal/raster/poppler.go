package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// DefaultDPI is the rasterization resolution used when none is configured.
const DefaultDPI = 150

// PopplerDecoder rasterizes PDF documents with poppler's pdftoppm.
type PopplerDecoder struct {
	// Path of the pdftoppm binary; empty means look it up on PATH.
	Path string
	DPI  int
}

// Available reports whether the rasterizer can be run.
func (d PopplerDecoder) Available() bool {
	_, err := d.binary()
	return err == nil
}

func (d PopplerDecoder) binary() (string, error) {
	name := d.Path
	if name == "" {
		name = "pdftoppm"
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", ErrToolMissing
	}
	return path, nil
}

// Decode implements Decoder.
func (d PopplerDecoder) Decode(ctx context.Context, src Source) ([]*Image, error) {
	bin, err := d.binary()
	if err != nil {
		return nil, err
	}

	pdfCtx, err := api.ReadContextFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}
	if pdfCtx.PageCount == 0 {
		return nil, ErrNoPages
	}

	tmpDir, err := os.MkdirTemp("", "slide-sheets-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	dpi := d.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	args := []string{"-r", strconv.Itoa(dpi), "-png", src.Path, filepath.Join(tmpDir, "page")}
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("pdftoppm: %w", err)
		}
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, msg)
	}

	pages, err := FileDecoder{}.Decode(ctx, Source{ID: src.ID, Path: tmpDir})
	if err != nil {
		if errors.Is(err, ErrNoPages) {
			return nil, fmt.Errorf("pdftoppm produced no pages")
		}
		return nil, err
	}
	if len(pages) != pdfCtx.PageCount {
		return nil, fmt.Errorf("pdftoppm produced %d pages, document has %d", len(pages), pdfCtx.PageCount)
	}
	return pages, nil
}

// AutoDecoder picks a decoder by file type: PDFs go to PDF, everything
// else (image files and directories) to Files.
type AutoDecoder struct {
	Files FileDecoder
	PDF   PopplerDecoder
}

// Decode implements Decoder.
func (d AutoDecoder) Decode(ctx context.Context, src Source) ([]*Image, error) {
	if strings.EqualFold(filepath.Ext(src.Path), ".pdf") {
		return d.PDF.Decode(ctx, src)
	}
	return d.Files.Decode(ctx, src)
}
