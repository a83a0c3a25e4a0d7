// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deck assembles processed page images into a PowerPoint
// presentation. The deck has a fixed 10 in x 5.625 in (16:9) canvas and
// holds one full-bleed picture per slide, in the order the slides were
// added. The .pptx package is written directly over archive/zip; the XML
// parts live in ooxml.go.
package deck

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// Slide canvas in English Metric Units (914400 EMU per inch).
const (
	SlideWidthEMU  = 9144000 // 10 in
	SlideHeightEMU = 5143500 // 5.625 in
)

// MIMEType is the standard content type of the produced artifact.
const MIMEType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// ErrOutputWriteFailed reports that the presentation could not be
// serialized. A failed file write leaves no partial artifact behind.
var ErrOutputWriteFailed = errors.New("output write failed")

// Deck accumulates slides in order. The zero value is a valid empty
// presentation with no slides.
type Deck struct {
	slides [][]byte // PNG-encoded page images, one per slide
}

// AddSlide appends one slide holding img, placed at the slide origin and
// stretched to the full canvas. The source aspect ratio is not preserved
// if it differs from 16:9.
func (d *Deck) AddSlide(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding slide %d: %w", len(d.slides)+1, err)
	}
	d.slides = append(d.slides, buf.Bytes())
	return nil
}

// SlideCount returns the number of slides added so far.
func (d *Deck) SlideCount() int { return len(d.slides) }

// WriteTo serializes the presentation as a .pptx package to w.
func (d *Deck) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	if err := d.writeParts(zw); err != nil {
		zw.Close()
		return cw.n, fmt.Errorf("%w: %w", ErrOutputWriteFailed, err)
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("%w: %w", ErrOutputWriteFailed, err)
	}
	return cw.n, nil
}

// Bytes serializes the presentation into an in-memory buffer.
func (d *Deck) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile serializes the presentation to path. The write goes to a
// temporary file in the same directory first and is renamed into place,
// so a failure never leaves a partial artifact at path.
func (d *Deck) WriteFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pdfdeck-*.pptx")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWriteFailed, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := d.WriteTo(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWriteFailed, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWriteFailed, err)
	}
	return nil
}

// writeParts emits every package part: the fixed skeleton (content types,
// relationships, document properties, presentation, master, blank layout,
// theme) and one slide part, slide relationship and media part per image.
func (d *Deck) writeParts(zw *zip.Writer) error {
	n := len(d.slides)

	static := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML(n)},
		{"_rels/.rels", rootRelsXML},
		{"docProps/core.xml", corePropsXML()},
		{"docProps/app.xml", appPropsXML(n)},
		{"ppt/presentation.xml", presentationXML(n)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(n)},
		{"ppt/presProps.xml", presPropsXML},
		{"ppt/viewProps.xml", viewPropsXML},
		{"ppt/tableStyles.xml", tableStylesXML},
		{"ppt/theme/theme1.xml", themeXML},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML},
	}
	for _, part := range static {
		if err := writeEntry(zw, part.name, []byte(part.content)); err != nil {
			return err
		}
	}

	for i, img := range d.slides {
		num := i + 1
		if err := writeEntry(zw, fmt.Sprintf("ppt/media/image%d.png", num), img); err != nil {
			return err
		}
		if err := writeEntry(zw, fmt.Sprintf("ppt/slides/slide%d.xml", num), []byte(slideXML(num))); err != nil {
			return err
		}
		if err := writeEntry(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", num), []byte(slideRelsXML(num))); err != nil {
			return err
		}
	}

	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing entry %s: %w", name, err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
