// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render rasterizes PDF documents into page images through MuPDF
// (github.com/gen2brain/go-fitz). A document is accepted either as a
// filesystem path or as an in-memory buffer; the in-memory path writes no
// files.
package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// ErrSourceUnreadable reports that the input could not be opened or
// rendered: the bytes are not a parseable PDF, or the MuPDF backend
// failed. The conversion never retries and produces no partial output.
var ErrSourceUnreadable = errors.New("source unreadable")

// Source identifies an input document, either on disk or in memory.
// Exactly one of the two constructors applies.
type Source struct {
	path string
	data []byte
}

// FileSource returns a Source that reads from a filesystem path.
func FileSource(path string) Source { return Source{path: path} }

// BytesSource returns a Source that reads from an in-memory buffer.
func BytesSource(data []byte) Source { return Source{data: data} }

// Name returns the filesystem path for file sources, or "" for in-memory
// sources.
func (s Source) Name() string { return s.path }

func (s Source) open() (*fitz.Document, error) {
	if s.path != "" {
		return fitz.New(s.path)
	}
	return fitz.NewFromMemory(s.data)
}

// Pages rasterizes every page of the source at the given DPI and returns
// the images in document order. Any positive DPI the backend accepts is
// valid here; range limits belong to the front ends. A document with no
// pages yields an empty, non-nil slice and no error. Open and render
// failures wrap ErrSourceUnreadable.
func Pages(src Source, dpi int) ([]*image.RGBA, error) {
	doc, err := src.open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening document: %w", ErrSourceUnreadable, err)
	}
	defer doc.Close()

	n := doc.NumPage()
	pages := make([]*image.RGBA, 0, n)
	for i := 0; i < n; i++ {
		img, err := doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("%w: rendering page %d: %w", ErrSourceUnreadable, i+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
