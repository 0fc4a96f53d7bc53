package raster

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/kozaktomas/slide-sheets/internal/fingerprint"
	"github.com/kozaktomas/slide-sheets/internal/layout"
)

// DefaultWorkers is the decode concurrency used when none is configured.
const DefaultWorkers = 4

// Library holds decoded documents by id. It implements layout.ImageSource.
type Library struct {
	docs map[string][]*Image
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{docs: make(map[string][]*Image)}
}

// Add stores the pages of one document, replacing earlier ones.
func (l *Library) Add(id string, pages []*Image) {
	l.docs[id] = pages
}

// Image implements layout.ImageSource.
func (l *Library) Image(documentID string, pageIndex int) (layout.RasterImage, bool) {
	pages, ok := l.docs[documentID]
	if !ok || pageIndex < 0 || pageIndex >= len(pages) {
		return nil, false
	}
	return pages[pageIndex], true
}

// PageCount returns the number of pages of a document (0 if unknown).
func (l *Library) PageCount(documentID string) int {
	return len(l.docs[documentID])
}

// Documents returns the ids of all decoded documents, sorted.
func (l *Library) Documents() []string {
	ids := make([]string, 0, len(l.docs))
	for id := range l.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NearDuplicates returns consecutive page pairs of a document whose
// difference hashes are within threshold bits.
func (l *Library) NearDuplicates(documentID string, threshold int) []fingerprint.Pair {
	pages := l.docs[documentID]
	hashes := make([]fingerprint.Hash, len(pages))
	for i, p := range pages {
		hashes[i] = fingerprint.DHash(p.Decoded())
	}
	return fingerprint.ConsecutiveDuplicates(hashes, threshold)
}

// NearDuplicate is a pair of consecutive, nearly identical pages of one
// document, typically steps of an animation build. Pages are 1-based.
type NearDuplicate struct {
	Document string `json:"document"`
	First    int    `json:"first_page"`
	Second   int    `json:"second_page"`
	Distance int    `json:"distance"`
}

// FindNearDuplicates runs NearDuplicates over the given documents in order.
func (l *Library) FindNearDuplicates(documentIDs []string, threshold int) []NearDuplicate {
	out := []NearDuplicate{}
	for _, id := range documentIDs {
		for _, p := range l.NearDuplicates(id, threshold) {
			out = append(out, NearDuplicate{Document: id, First: p.First + 1, Second: p.Second + 1, Distance: p.Distance})
		}
	}
	return out
}

// decodeOne decodes src once a worker slot in sem is free. Sources still
// waiting for a slot fail with the context error when ctx ends.
func decodeOne(ctx context.Context, dec Decoder, src Source, sem chan struct{}) ([]*Image, error) {
	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-sem }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pages, err := dec.Decode(ctx, src)
	if err == nil && len(pages) == 0 {
		err = ErrNoPages
	}
	return pages, err
}

// Progress is called once per finished source, possibly from several
// goroutines at once; err is nil on success.
type Progress func(src Source, pages int, err error)

// DecodeAll decodes sources with a bounded number of workers. Documents
// that decode successfully are kept even when others fail; the failures are
// returned joined, each as a *DecodeError.
func DecodeAll(ctx context.Context, dec Decoder, sources []Source, workers int, progress Progress) (*Library, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	lib := NewLibrary()
	var (
		mu       sync.Mutex
		failures []*DecodeError
	)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for _, src := range sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()

			pages, err := decodeOne(ctx, dec, src, sem)

			mu.Lock()
			if err != nil {
				failures = append(failures, &DecodeError{DocumentID: src.ID, Err: err})
			} else {
				lib.Add(src.ID, pages)
			}
			mu.Unlock()

			if progress != nil {
				progress(src, len(pages), err)
			}
		}(src)
	}
	wg.Wait()

	// stable error order regardless of scheduling
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].DocumentID < failures[j].DocumentID
	})
	errs := make([]error, len(failures))
	for i, f := range failures {
		errs[i] = f
	}
	return lib, errors.Join(errs...)
}
