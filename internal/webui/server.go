// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package webui serves the browser front end: an upload form that runs
// the conversion and streams the finished deck back as a download. It is
// a thin shell over the pipeline; all processing semantics live there.
package webui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/meshint/pdfdeck/internal/pipeline"
	"github.com/meshint/pdfdeck/internal/progress"
	"github.com/meshint/pdfdeck/internal/render"
	"github.com/meshint/pdfdeck/pkg/types"
)

// DPI bounds enforced on the upload form. The core accepts any positive
// value; the range belongs to this shell.
const (
	MinDPI = 72
	MaxDPI = 200
)

// Server hosts the web front end.
type Server struct {
	cfg types.ServeConfig
	log zerolog.Logger

	// convert runs one conversion; tests substitute a fake.
	convert func(src render.Source, opts pipeline.Options, sink progress.Sink) ([]byte, error)
}

// New returns a Server for the given configuration.
func New(cfg types.ServeConfig, log zerolog.Logger) *Server {
	return &Server{cfg: cfg, log: log, convert: pipeline.Convert}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Post("/convert", s.handleConvert)
	return r
}

// ListenAndServe runs the server until it fails.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.log.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, s.Router())
}
