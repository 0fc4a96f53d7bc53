package raster

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/disintegration/imaging"

	// formats beyond the standard library
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Source is one input document.
type Source struct {
	ID   string // document id used by page entries
	Path string // file or directory on disk
	Name string // display name used in labels
}

// DisplayName returns Name, falling back to the file name without extension.
func (s Source) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Decoder turns a source document into its ordered page images.
type Decoder interface {
	Decode(ctx context.Context, src Source) ([]*Image, error)
}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// IsImageFile reports whether path has a supported raster image extension.
func IsImageFile(path string) bool {
	return slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(path)))
}

// FileDecoder reads a single image file as a one-page document, or a
// directory of images as one page per file in name order.
type FileDecoder struct{}

// Decode implements Decoder.
func (FileDecoder) Decode(ctx context.Context, src Source) ([]*Image, error) {
	info, err := os.Stat(src.Path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		img, err := decodeFile(src.Path)
		if err != nil {
			return nil, err
		}
		return []*Image{img}, nil
	}

	paths, err := imageFiles(src.Path)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrNoPages
	}
	pages := make([]*Image, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := decodeFile(p)
		if err != nil {
			return nil, err
		}
		pages = append(pages, img)
	}
	return pages, nil
}

// imageFiles lists the images in dir in natural name order.
func imageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsImageFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	slices.SortFunc(paths, compareNatural)
	return paths, nil
}

func decodeFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return FromImage(img), nil
}

// compareNatural orders names so that "page-2" sorts before "page-10".
// Names that differ only in zero padding fall back to byte order.
func compareNatural(a, b string) int {
	if c := naturalOrder(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func naturalOrder(a, b string) int {
	for a != "" && b != "" {
		da, ra := leadingDigits(a)
		db, rb := leadingDigits(b)
		if da != "" && db != "" {
			na, nb := strings.TrimLeft(da, "0"), strings.TrimLeft(db, "0")
			if len(na) != len(nb) {
				return len(na) - len(nb)
			}
			if c := strings.Compare(na, nb); c != 0 {
				return c
			}
			a, b = ra, rb
			continue
		}
		if a[0] != b[0] {
			return int(a[0]) - int(b[0])
		}
		a, b = a[1:], b[1:]
	}
	return len(a) - len(b)
}

func leadingDigits(s string) (string, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}
