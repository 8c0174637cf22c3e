package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/docoutline/internal/builder"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/session"
	"github.com/go-chi/chi/v5"
)

// selectionRequest is the body for edit endpoints: the orders of the
// selected headers.
type selectionRequest struct {
	Orders []int `json:"orders"`
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	id := chi.URLParam(r, "sessionID")
	sess := s.orchestrator.Sessions().Get(id)
	if sess == nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return nil
	}
	return sess
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	writeSession(w, sess)
}

func (s *Server) handleIndent(w http.ResponseWriter, r *http.Request) {
	s.handleEdit(w, r, builder.Indent)
}

func (s *Server) handleOutdent(w http.ResponseWriter, r *http.Request) {
	s.handleEdit(w, r, builder.Outdent)
}

func (s *Server) handleExclude(w http.ResponseWriter, r *http.Request) {
	s.handleEdit(w, r, builder.Exclude)
}

// handleEdit decodes the selection, applies the operation and translates
// failures: invalid selections are caller bugs (400), structural
// violations are expected editing outcomes (409).
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request, op func([]*outline.Header, []int) error) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Orders) == 0 {
		jsonError(w, "orders is required", http.StatusBadRequest)
		return
	}

	err := sess.Edit(func(headers []*outline.Header) error {
		return op(headers, req.Orders)
	})
	if err != nil {
		var selErr *builder.SelectionError
		switch {
		case errors.As(err, &selErr):
			jsonError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, builder.ErrHierarchyGap), errors.Is(err, builder.ErrOutdentRoot):
			jsonError(w, err.Error(), http.StatusConflict)
		default:
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeSession(w, sess)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	sess.Edit(func(headers []*outline.Header) error {
		builder.IncludeAll(headers)
		return nil
	})
	writeSession(w, sess)
}

func (s *Server) handleEditsCheck(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{
		"can_indent": sess.Check(func(headers []*outline.Header) bool {
			return builder.CanIndent(headers, req.Orders)
		}),
		"can_outdent": sess.Check(func(headers []*outline.Header) bool {
			return builder.CanOutdent(headers, req.Orders)
		}),
	})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	tree := sess.Tree()
	if tree == nil {
		tree = []*outline.Node{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"outline": tree})
}

func writeSession(w http.ResponseWriter, sess *session.Session) {
	headers := sess.Headers()
	if headers == nil {
		headers = []*outline.Header{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session_id": sess.ID,
		"filename":   sess.Filename,
		"headers":    headers,
	})
}
