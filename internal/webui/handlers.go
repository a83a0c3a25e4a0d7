// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package webui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meshint/pdfdeck/internal/deck"
	"github.com/meshint/pdfdeck/internal/pipeline"
	"github.com/meshint/pdfdeck/internal/render"
)

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>PDF to PPTX Cleaner</title>
</head>
<body>
<h1>PDF to PPTX Watermark Remover</h1>
<p>Upload a PDF to remove the bottom-right watermark and convert it to PowerPoint.</p>
<form action="/convert" method="post" enctype="multipart/form-data">
<p><input type="file" name="pdf" accept=".pdf,application/pdf" required></p>
<p><label>Quality (DPI): <input type="number" name="dpi" min="72" max="200" step="10" value="100"></label></p>
<p><button type="submit">Start Conversion</button></p>
</form>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleConvert accepts a multipart PDF upload plus a DPI field, runs the
// conversion, and streams the deck back as an attachment download named
// <stem>_converted.pptx.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	job := uuid.NewString()
	log := s.log.With().Str("job", job).Logger()

	maxBytes := s.cfg.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, log, http.StatusBadRequest, fmt.Errorf("parsing upload: %w", err))
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		writeError(w, log, http.StatusBadRequest, errors.New("missing pdf file field"))
		return
	}
	defer file.Close()

	dpi, err := parseDPI(r.FormValue("dpi"))
	if err != nil {
		writeError(w, log, http.StatusBadRequest, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, log, http.StatusBadRequest, fmt.Errorf("reading upload: %w", err))
		return
	}

	log.Info().Str("file", header.Filename).Int("dpi", dpi).Int("bytes", len(data)).Msg("conversion started")
	start := time.Now()

	out, err := s.convert(render.BytesSource(data), pipeline.Options{DPI: dpi}, logSink{log: log})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, render.ErrSourceUnreadable) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, log, status, err)
		return
	}

	log.Info().Dur("elapsed", time.Since(start)).Int("bytes", len(out)).Msg("conversion finished")

	w.Header().Set("Content-Type", deck.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(header.Filename)))
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.Write(out)
}

// parseDPI validates the form's DPI field; empty falls back to the default.
func parseDPI(v string) (int, error) {
	if v == "" {
		return pipeline.DefaultDPI, nil
	}
	dpi, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid dpi %q", v)
	}
	if dpi < MinDPI || dpi > MaxDPI {
		return 0, fmt.Errorf("dpi %d out of range [%d, %d]", dpi, MinDPI, MaxDPI)
	}
	return dpi, nil
}

// downloadName derives the attachment filename from the uploaded one:
// the original stem with a _converted.pptx suffix.
func downloadName(uploadName string) string {
	base := filepath.Base(uploadName)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." {
		stem = "document"
	}
	return stem + "_converted.pptx"
}

func writeError(w http.ResponseWriter, log zerolog.Logger, status int, err error) {
	log.Error().Int("status", status).Err(err).Msg("conversion failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// logSink forwards pipeline progress to the server log.
type logSink struct {
	log zerolog.Logger
}

func (s logSink) Step(fraction float64, status string) {
	s.log.Debug().Float64("fraction", fraction).Msg(status)
}
