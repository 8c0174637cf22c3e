package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/docoutline/internal/matcher"
	"github.com/dgallion1/docoutline/internal/outline"
)

// matchRequest carries the target outline specification to reconcile
// against the session's document headers.
type matchRequest struct {
	Targets       []outline.TargetEntry `json:"targets"`
	EnableFuzzy   *bool                 `json:"enable_fuzzy,omitempty"`
	MinConfidence float64               `json:"min_confidence,omitempty"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Targets) == 0 {
		jsonError(w, "targets is required", http.StatusBadRequest)
		return
	}

	opts := matcher.Options{
		EnableFuzzy:   true,
		MinConfidence: s.cfg.DefaultMinConfidence,
	}
	if req.EnableFuzzy != nil {
		opts.EnableFuzzy = *req.EnableFuzzy
	}
	if req.MinConfidence > 0 {
		opts.MinConfidence = req.MinConfidence
	}

	records := sess.Match(req.Targets, opts)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"matches": records})
}
