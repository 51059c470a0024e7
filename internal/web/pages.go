package web

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/arc-damage-tracker/internal/arcdata"
	"github.com/ramonehamilton/arc-damage-tracker/internal/version"
	"github.com/ramonehamilton/arc-damage-tracker/internal/viewmodel"
)

// indexData feeds the listing page.
type indexData struct {
	Version    string
	Listing    *viewmodel.Listing
	Weapons    []arcdata.Weapon
	Explosives []arcdata.Explosive
	Notes      []string
}

// detailData feeds the per-ARC page.
type detailData struct {
	Version string
	Arc     *viewmodel.Detail
}

// notFoundData feeds the 404 page.
type notFoundData struct {
	Version string
	Slug    string
}

// errorData feeds the 500 page.
type errorData struct {
	Version string
}

// indexPage renders the threat-grouped listing.
func (s *Server) indexPage(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Document()
	if err != nil {
		s.renderLoadError(w, err)
		return
	}

	s.render(w, http.StatusOK, "index", indexData{
		Version:    version.GetVersion(),
		Listing:    viewmodel.BuildListing(doc),
		Weapons:    doc.Weapons,
		Explosives: doc.Explosives,
		Notes:      doc.Notes,
	})
}

// arcDetailPage renders one ARC's strategies, falling back to the roster
// record when no strategy data exists and to the 404 page otherwise.
func (s *Server) arcDetailPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	doc, err := s.store.Document()
	if err != nil {
		s.renderLoadError(w, err)
		return
	}

	detail, err := viewmodel.BuildDetail(doc, slug)
	if errors.Is(err, viewmodel.ErrArcNotFound) {
		s.render(w, http.StatusNotFound, "notfound", notFoundData{
			Version: version.GetVersion(),
			Slug:    slug,
		})
		return
	}
	if err != nil {
		s.renderLoadError(w, err)
		return
	}

	s.render(w, http.StatusOK, "detail", detailData{
		Version: version.GetVersion(),
		Arc:     detail,
	})
}

// render executes a page into a buffer first so template failures become a
// clean 500 instead of a half-written body.
func (s *Server) render(w http.ResponseWriter, status int, page string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.Render(&buf, page, data); err != nil {
		log.Printf("[Web] Rendering %s failed: %v", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderLoadError(w http.ResponseWriter, err error) {
	log.Printf("[Web] Data load failed: %v", err)
	s.render(w, http.StatusInternalServerError, "error", errorData{Version: version.GetVersion()})
}
