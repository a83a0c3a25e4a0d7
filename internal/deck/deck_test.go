// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func buildDeck(t *testing.T, slides int) []byte {
	t.Helper()
	var d Deck
	for i := 0; i < slides; i++ {
		err := d.AddSlide(pageImage(64, 36, color.RGBA{R: uint8(i * 40), G: 80, B: 120, A: 255}))
		require.NoError(t, err)
	}
	data, err := d.Bytes()
	require.NoError(t, err)
	return data
}

func openZip(t *testing.T, data []byte) *zip.Reader {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return zr
}

func partContent(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	f, err := zr.Open(name)
	require.NoError(t, err, "part %s", name)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return data
}

func TestDeckParts(t *testing.T) {
	zr := openZip(t, buildDeck(t, 2))

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}

	for _, want := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/presProps.xml",
		"ppt/viewProps.xml",
		"ppt/tableStyles.xml",
		"ppt/theme/theme1.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideMasters/_rels/slideMaster1.xml.rels",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide1.xml.rels",
		"ppt/slides/_rels/slide2.xml.rels",
		"ppt/media/image1.png",
		"ppt/media/image2.png",
	} {
		assert.True(t, names[want], "missing part %s", want)
	}
	assert.False(t, names["ppt/slides/slide3.xml"], "unexpected third slide")
}

func TestSlideOrderMatchesAddOrder(t *testing.T) {
	var d Deck
	require.NoError(t, d.AddSlide(pageImage(8, 8, color.RGBA{R: 10, A: 255})))
	require.NoError(t, d.AddSlide(pageImage(8, 8, color.RGBA{R: 20, A: 255})))
	data, err := d.Bytes()
	require.NoError(t, err)
	zr := openZip(t, data)

	for i, wantRed := range []uint8{10, 20} {
		raw := partContent(t, zr, fmt.Sprintf("ppt/media/image%d.png", i+1))
		img, err := png.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		r, _, _, _ := img.At(0, 0).RGBA()
		assert.Equal(t, uint32(wantRed), r>>8, "slide %d media out of order", i+1)
	}

	// The presentation lists slides in the same order.
	pres := string(partContent(t, zr, "ppt/presentation.xml"))
	assert.Less(t, strings.Index(pres, `r:id="rId6"`), strings.Index(pres, `r:id="rId7"`))
}

func TestSlideFillsCanvas(t *testing.T) {
	zr := openZip(t, buildDeck(t, 1))

	slide := string(partContent(t, zr, "ppt/slides/slide1.xml"))
	assert.Contains(t, slide, `<a:off x="0" y="0"/>`)
	assert.Contains(t, slide, fmt.Sprintf(`<a:ext cx="%d" cy="%d"/>`, SlideWidthEMU, SlideHeightEMU))

	pres := string(partContent(t, zr, "ppt/presentation.xml"))
	assert.Contains(t, pres, fmt.Sprintf(`<p:sldSz cx="%d" cy="%d"/>`, SlideWidthEMU, SlideHeightEMU))
}

func TestCanvasIs16x9(t *testing.T) {
	// 10 in x 5.625 in at 914400 EMU per inch.
	assert.Equal(t, 10*914400, SlideWidthEMU)
	assert.Equal(t, int(5.625*914400), SlideHeightEMU)
	assert.Equal(t, 16.0/9.0, float64(SlideWidthEMU)/float64(SlideHeightEMU))
}

func TestEmptyDeck(t *testing.T) {
	var d Deck
	assert.Equal(t, 0, d.SlideCount())

	data, err := d.Bytes()
	require.NoError(t, err)
	zr := openZip(t, data)

	pres := string(partContent(t, zr, "ppt/presentation.xml"))
	assert.Contains(t, pres, "<p:sldIdLst/>")

	types := string(partContent(t, zr, "[Content_Types].xml"))
	assert.NotContains(t, types, "/ppt/slides/")

	app := string(partContent(t, zr, "docProps/app.xml"))
	assert.Contains(t, app, "<Slides>0</Slides>")

	for _, f := range zr.File {
		assert.False(t, strings.HasPrefix(f.Name, "ppt/slides/"), "empty deck has slide part %s", f.Name)
		assert.False(t, strings.HasPrefix(f.Name, "ppt/media/"), "empty deck has media part %s", f.Name)
	}
}

func TestMediaIsTruecolorPNG(t *testing.T) {
	zr := openZip(t, buildDeck(t, 1))
	raw := partContent(t, zr, "ppt/media/image1.png")

	// Byte 25 of a PNG file is the IHDR color type; 2 is truecolor without
	// an alpha channel, which an opaque source image must encode to.
	require.Greater(t, len(raw), 25)
	assert.Equal(t, byte(2), raw[25], "expected truecolor PNG")

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 36), img.Bounds())
}

func TestWriteTo_ReportsBytesWritten(t *testing.T) {
	var d Deck
	require.NoError(t, d.AddSlide(pageImage(16, 9, color.RGBA{A: 255})))

	var buf bytes.Buffer
	n, err := d.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pptx")

	var d Deck
	require.NoError(t, d.AddSlide(pageImage(16, 9, color.RGBA{A: 255})))
	require.NoError(t, d.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	openZip(t, data)

	// No temp files left next to the artifact.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.pptx", entries[0].Name())
}

func TestWriteFile_FailureLeavesNoPartialArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	path := filepath.Join(dir, "out.pptx")

	var d Deck
	err := d.WriteFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutputWriteFailed))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
