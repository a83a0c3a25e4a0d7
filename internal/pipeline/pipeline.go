// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs a document conversion end to end: rasterize each
// PDF page, scrub the watermark corner, and assemble the pages into a
// slide deck. Every front end delegates here; the shells only supply the
// source, a DPI setting and a progress sink, and consume either a file
// path or the finished presentation bytes.
package pipeline

import (
	"fmt"
	"image"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/meshint/pdfdeck/internal/deck"
	"github.com/meshint/pdfdeck/internal/progress"
	"github.com/meshint/pdfdeck/internal/render"
	"github.com/meshint/pdfdeck/internal/scrub"
)

// DefaultDPI is the rasterization resolution used when none is given.
const DefaultDPI = 100

// Options configures one conversion. The zero value is usable: DPI
// defaults to DefaultDPI and the random source is seeded from the clock.
type Options struct {
	// DPI is the rasterization resolution passed to the renderer.
	DPI int

	// Rand is the noise source for the watermark patch. Supplying a
	// seeded generator makes the patch deterministic.
	Rand *rand.Rand

	// Trace, when non-nil, receives per-page diagnostics: pixel
	// dimensions, the patch rectangle and the sampled reference colors.
	Trace io.Writer

	// Rasterize overrides the page renderer. Defaults to render.Pages;
	// tests substitute a fake to run without the MuPDF backend.
	Rasterize func(src render.Source, dpi int) ([]*image.RGBA, error)
}

// Convert runs the full pipeline and returns the presentation as an
// in-memory .pptx buffer. A nil sink suppresses progress reporting and
// changes nothing else. Any per-page failure aborts the whole conversion;
// the unit of success is the document.
func Convert(src render.Source, opts Options, sink progress.Sink) ([]byte, error) {
	d, err := run(src, opts, sink)
	if err != nil {
		return nil, err
	}
	return d.Bytes()
}

// ConvertToFile runs the full pipeline and writes the presentation to
// outPath. A failed write leaves no partial file behind.
func ConvertToFile(src render.Source, outPath string, opts Options, sink progress.Sink) error {
	d, err := run(src, opts, sink)
	if err != nil {
		return err
	}
	return d.WriteFile(outPath)
}

func run(src render.Source, opts Options, sink progress.Sink) (*deck.Deck, error) {
	if sink == nil {
		sink = progress.Nop{}
	}
	dpi := opts.DPI
	if dpi == 0 {
		dpi = DefaultDPI
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rasterize := opts.Rasterize
	if rasterize == nil {
		rasterize = render.Pages
	}

	sink.Step(0, "Starting conversion")
	pages, err := rasterize(src, dpi)
	if err != nil {
		return nil, err
	}
	total := len(pages)
	if opts.Trace != nil {
		fmt.Fprintf(opts.Trace, "%d pages\n", total)
	}

	// First half of the progress range: per-page watermark scrubbing.
	for i, page := range pages {
		sink.Step(float64(i)/float64(total)*0.5, fmt.Sprintf("Removing watermark: page %d/%d", i+1, total))
		if opts.Trace != nil {
			tracePage(opts.Trace, i+1, page)
		}
		scrub.Patch(page, rng)
	}

	// Second half: slide assembly.
	sink.Step(0.5, "Generating slides")
	var d deck.Deck
	for i, page := range pages {
		sink.Step(0.5+float64(i)/float64(total)*0.5, fmt.Sprintf("Adding slide %d/%d", i+1, total))
		if err := d.AddSlide(page); err != nil {
			return nil, err
		}
	}

	sink.Step(1, "Done")
	return &d, nil
}

func tracePage(w io.Writer, num int, page *image.RGBA) {
	b := page.Bounds()
	r := scrub.Region(b.Dx(), b.Dy())
	refs := scrub.References(page)
	fmt.Fprintf(w, "page %d: %d x %d px\n", num, b.Dx(), b.Dy())
	fmt.Fprintf(w, "  patch (%d,%d)-(%d,%d)\n", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
	fmt.Fprintf(w, "  refs bottom-right %v top %v left %v\n", refs[0], refs[1], refs[2])
}

// OutputName derives the default artifact path for an input document: the
// same directory and stem with a .pptx extension.
func OutputName(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".pptx"
}
