package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/kinview/pkg/kin"
	"github.com/matzehuels/kinview/pkg/kin/layout"
	"github.com/matzehuels/kinview/pkg/kin/visibility"
	"github.com/matzehuels/kinview/pkg/pipeline"
	"github.com/matzehuels/kinview/pkg/store"
)

// layoutRequest is the body for POST /v1/layout and POST /v1/trees/{id}/layout.
// For the tree variant People is ignored; the stored snapshot is used.
type layoutRequest struct {
	People      []kin.Person  `json:"people,omitempty"`
	Strategy    string        `json:"strategy,omitempty"`
	Orientation string        `json:"orientation,omitempty"`
	RootID      string        `json:"root_id,omitempty"`
	Spacing     layout.Config `json:"spacing,omitempty"`
}

func (req layoutRequest) options() pipeline.Options {
	return pipeline.Options{
		Strategy:    req.Strategy,
		Orientation: req.Orientation,
		RootID:      req.RootID,
		Spacing:     req.Spacing,
	}
}

// relationshipRequest is the body for POST /v1/relationship.
type relationshipRequest struct {
	People []kin.Person `json:"people"`
	FromID string       `json:"from_id"`
	ToID   string       `json:"to_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLayout computes a layout for a snapshot posted in the request body.
// Malformed bodies and invalid layout options are 400s; a layout failure over
// valid options is a 500.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	opts := req.options()
	if err := opts.ValidateForLayout(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lay, err := s.runner.ComputeLayout(r.Context(), req.People, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, lay)
}

// handleRelationship finds the kinship path between two people. Two people
// with no connection are a legitimate answer, not an error: the response is
// a JSON null with status 200.
func (s *Server) handleRelationship(w http.ResponseWriter, r *http.Request) {
	var req relationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.FromID == "" || req.ToID == "" {
		writeError(w, http.StatusBadRequest, "from_id and to_id are required")
		return
	}

	path, found := s.runner.Describe(r.Context(), req.People, req.FromID, req.ToID)
	if !found {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, path)
}

func (s *Server) handleListTrees(w http.ResponseWriter, r *http.Request) {
	trees, err := s.store.ListTrees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if trees == nil {
		trees = []store.Tree{}
	}
	writeJSON(w, http.StatusOK, trees)
}

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := s.store.GetTree(r.Context(), chi.URLParam(r, "treeID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "tree not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (s *Server) handlePutTree(w http.ResponseWriter, r *http.Request) {
	var tree store.Tree
	if err := json.NewDecoder(r.Body).Decode(&tree); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	tree.ID = chi.URLParam(r, "treeID")
	tree.UpdatedAt = time.Now().UTC()

	if err := s.store.PutTree(r.Context(), tree); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTree(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTree(r.Context(), chi.URLParam(r, "treeID")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTreeLayout computes a layout for a stored tree. Computed layouts are
// persisted under their content key so repeated requests with unchanged data
// and options are served from the store.
func (s *Server) handleTreeLayout(w http.ResponseWriter, r *http.Request) {
	treeID := chi.URLParam(r, "treeID")

	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	opts := req.options()
	if err := opts.ValidateForLayout(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tree, err := s.store.GetTree(r.Context(), treeID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "tree not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if opts.RootID == "" && len(tree.People) > 0 {
		opts.RootID = tree.People[0].ID
	}
	key := s.runner.Keyer.LayoutKey(pipeline.SnapshotHash(tree.People), opts.LayoutKeyOpts())

	if lay, err := s.store.GetLayout(r.Context(), treeID, key); err == nil {
		writeJSON(w, http.StatusOK, lay)
		return
	}

	lay, err := s.runner.ComputeLayout(r.Context(), tree.People, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Persistence is best-effort; the computed layout is still returned.
	if err := s.store.PutLayout(r.Context(), treeID, key, lay); err != nil {
		s.logger.Warn("persist layout", "tree", treeID, "err", err)
	}
	writeJSON(w, http.StatusOK, lay)
}

func (s *Server) handleGetCollapse(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.GetCollapse(r.Context(), chi.URLParam(r, "treeID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handlePutCollapse(w http.ResponseWriter, r *http.Request) {
	var st visibility.State
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.store.PutCollapse(r.Context(), chi.URLParam(r, "treeID"), st); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
