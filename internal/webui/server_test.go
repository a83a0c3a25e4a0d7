// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package webui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshint/pdfdeck/internal/deck"
	"github.com/meshint/pdfdeck/internal/pipeline"
	"github.com/meshint/pdfdeck/internal/progress"
	"github.com/meshint/pdfdeck/internal/render"
	"github.com/meshint/pdfdeck/pkg/types"
)

// fakeConvert records the options it was called with and returns canned
// output or an error.
type fakeConvert struct {
	output []byte
	err    error
	dpi    int
	called bool
}

func (f *fakeConvert) convert(src render.Source, opts pipeline.Options, sink progress.Sink) ([]byte, error) {
	f.called = true
	f.dpi = opts.DPI
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func newTestServer(fake *fakeConvert) *Server {
	s := New(types.Defaults().Serve, zerolog.Nop())
	s.convert = fake.convert
	return s
}

// uploadRequest builds a multipart POST to /convert with an optional pdf
// file part and dpi field.
func uploadRequest(t *testing.T, filename, dpi string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := mw.CreateFormFile("pdf", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4 fake"))
		require.NoError(t, err)
	}
	if dpi != "" {
		require.NoError(t, mw.WriteField("dpi", dpi))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func errorPayload(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Contains(t, payload, "error")
	return payload
}

func TestIndex(t *testing.T) {
	rec := do(newTestServer(&fakeConvert{}), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/convert"`)
	assert.Contains(t, rec.Body.String(), `min="72" max="200" step="10" value="100"`)
}

func TestHealthz(t *testing.T) {
	rec := do(newTestServer(&fakeConvert{}), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestConvert(t *testing.T) {
	fake := &fakeConvert{output: []byte("pptx bytes")}
	rec := do(newTestServer(fake), uploadRequest(t, "lecture.pdf", "150"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 150, fake.dpi)
	assert.Equal(t, deck.MIMEType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="lecture_converted.pptx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "pptx bytes", rec.Body.String())
}

func TestConvert_DefaultDPI(t *testing.T) {
	fake := &fakeConvert{output: []byte("ok")}
	rec := do(newTestServer(fake), uploadRequest(t, "doc.pdf", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pipeline.DefaultDPI, fake.dpi)
}

func TestConvert_MissingFile(t *testing.T) {
	fake := &fakeConvert{output: []byte("ok")}
	rec := do(newTestServer(fake), uploadRequest(t, "", "100"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errorPayload(t, rec)
	assert.False(t, fake.called)
}

func TestConvert_DPIOutOfRange(t *testing.T) {
	for _, dpi := range []string{"60", "300", "-1", "abc"} {
		t.Run(dpi, func(t *testing.T) {
			fake := &fakeConvert{output: []byte("ok")}
			rec := do(newTestServer(fake), uploadRequest(t, "doc.pdf", dpi))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			errorPayload(t, rec)
			assert.False(t, fake.called)
		})
	}
}

func TestConvert_UnreadableSource(t *testing.T) {
	fake := &fakeConvert{err: fmt.Errorf("%w: bad header", render.ErrSourceUnreadable)}
	rec := do(newTestServer(fake), uploadRequest(t, "broken.pdf", "100"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	payload := errorPayload(t, rec)
	assert.Contains(t, payload["error"], "source unreadable")
}

func TestConvert_InternalFailure(t *testing.T) {
	fake := &fakeConvert{err: io.ErrShortWrite}
	rec := do(newTestServer(fake), uploadRequest(t, "doc.pdf", "100"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	errorPayload(t, rec)
}

func TestDownloadName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"lecture.pdf", "lecture_converted.pptx"},
		{"week 1.pdf", "week 1_converted.pptx"},
		{"C:\\files\\deck.pdf", "C:\\files\\deck_converted.pptx"},
		{".pdf", "document_converted.pptx"},
		{"", "document_converted.pptx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, downloadName(tt.in), "downloadName(%q)", tt.in)
	}
}
