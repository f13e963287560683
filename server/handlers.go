package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/postfmt/ansi"
	"github.com/charmbracelet/postfmt/format"
	"github.com/charmbracelet/postfmt/links"
	"github.com/charmbracelet/postfmt/segment"
	"github.com/charmbracelet/postfmt/spoiler"
	"github.com/go-chi/chi/v5"
	"github.com/muesli/termenv"
)

type renderRequest struct {
	Text   string `json:"text"`
	Board  string `json:"board"`
	Post   string `json:"post"`
	Reveal bool   `json:"reveal"`
}

type linksRequest struct {
	Text string `json:"text"`
}

type spoilerState struct {
	Post     string `json:"post"`
	Revealed []int  `json:"revealed"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !decode(w, r, &req) {
		return
	}

	segs := s.formatter.FormatText(req.Text, req.Board, req.Post, req.Reveal)

	if r.URL.Query().Get("format") == "ansi" {
		s.renderANSI(w, r, segs)
		return
	}

	writeJSON(w, http.StatusOK, format.NewDocument(req.Text, segs))
}

func (s *Server) renderANSI(w http.ResponseWriter, r *http.Request, segs []segment.Segment) {
	name := s.cfg.Style
	if q := r.URL.Query().Get("style"); q != "" {
		// Only built-in styles may be picked per request; paths stay a
		// server-side setting.
		if _, ok := ansi.DefaultStyles[q]; !ok {
			jsonError(w, fmt.Sprintf("unknown style %q", q), http.StatusBadRequest)
			return
		}
		name = q
	}
	styles, err := ansi.StyleFor(name)
	if err != nil {
		jsonError(w, "failed to load style: "+err.Error(), http.StatusInternalServerError)
		return
	}

	width := s.cfg.Width
	if q := r.URL.Query().Get("width"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			jsonError(w, "width must be a non-negative integer", http.StatusBadRequest)
			return
		}
		width = n
	}

	profile := termenv.TrueColor
	if name == ansi.NoTTYStyle {
		profile = termenv.Ascii
	}
	renderer, err := ansi.NewRenderer(ansi.Options{
		WordWrap:     width,
		Styles:       styles,
		ColorProfile: profile,
	})
	if err != nil {
		jsonError(w, "failed to create renderer: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(renderer.Render(segs)))
}

func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	var req linksRequest
	if !decode(w, r, &req) {
		return
	}
	found := links.Extract(req.Text)
	if found == nil {
		found = []links.Link{}
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleSpoilers(w http.ResponseWriter, r *http.Request) {
	s.writeSpoilers(w, chi.URLParam(r, "post"))
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	post := chi.URLParam(r, "post")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 1 || index > spoiler.MaxIndex {
		jsonError(w, fmt.Sprintf("spoiler index must be between 1 and %d", spoiler.MaxIndex), http.StatusBadRequest)
		return
	}

	revealed := s.formatter.Registry().Toggle(post, index)
	writeJSON(w, http.StatusOK, map[string]any{
		"post":     post,
		"index":    index,
		"revealed": revealed,
	})
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	post := chi.URLParam(r, "post")
	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil || count < 0 || count > spoiler.MaxIndex {
		jsonError(w, fmt.Sprintf("count query parameter must be between 0 and %d", spoiler.MaxIndex), http.StatusBadRequest)
		return
	}

	s.formatter.Registry().RevealAll(post, count)
	s.writeSpoilers(w, post)
}

func (s *Server) handleHide(w http.ResponseWriter, r *http.Request) {
	post := chi.URLParam(r, "post")
	s.formatter.Registry().HideAll(post)
	s.writeSpoilers(w, post)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.formatter.Registry().Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeSpoilers(w http.ResponseWriter, post string) {
	revealed := s.formatter.Registry().Revealed(post)
	if revealed == nil {
		revealed = []int{}
	}
	writeJSON(w, http.StatusOK, spoilerState{Post: post, Revealed: revealed})
}

// decode reads a JSON request body into v, writing an error response and
// returning false on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		jsonError(w, fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit), http.StatusRequestEntityTooLarge)
		return false
	}
	jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
	return false
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
