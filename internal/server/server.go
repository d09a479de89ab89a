// Package server exposes the document assembly engine over HTTP. It is
// thin plumbing: all business rules live in pkg/agreement and pkg/docxtpl.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/avatarmsp/msagen/pkg/agreement"
)

// Server handles the agreement form and document generation endpoints
type Server struct {
	generator *agreement.Generator
	preparer  agreement.Preparer
	log       zerolog.Logger
}

// New creates a server around a document generator
func New(generator *agreement.Generator, preparer agreement.Preparer, log zerolog.Logger) *Server {
	return &Server{
		generator: generator,
		preparer:  preparer,
		log:       log,
	}
}

// Router builds the HTTP routes
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/", s.Form)
	r.Post("/generate", s.Generate)
	r.Get("/healthz", s.Health)

	return r
}

// Form serves the submission form
func (s *Server) Form(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(formPage))
}

// Health reports service liveness
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
