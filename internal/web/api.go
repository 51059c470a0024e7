package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/arc-damage-tracker/internal/version"
	"github.com/ramonehamilton/arc-damage-tracker/internal/viewmodel"
	"github.com/ramonehamilton/arc-damage-tracker/internal/web/response"
)

// listArcs returns the listing projection as JSON.
func (s *Server) listArcs(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Document()
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, viewmodel.BuildListing(doc))
}

// getArc returns one ARC's detail projection as JSON.
func (s *Server) getArc(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	doc, err := s.store.Document()
	if err != nil {
		response.InternalError(w, err)
		return
	}

	detail, err := viewmodel.BuildDetail(doc, slug)
	if errors.Is(err, viewmodel.ErrArcNotFound) {
		response.NotFound(w, err)
		return
	}
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, detail)
}

// getVersion returns the build version.
func (s *Server) getVersion(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{"version": version.GetVersion()})
}
