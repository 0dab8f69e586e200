package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/coursebin/internal/contract"
	"github.com/alexanderramin/coursebin/internal/domain"
)

// actorHeader carries the pre-resolved acting user identity.
const actorHeader = "X-Actor-ID"

type deleteRequest struct {
	Hard   bool   `json:"hard"`
	Reason string `json:"reason"`
}

type restoreRequest struct {
	TargetStatus int `json:"targetStatus"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	entityType, entityID, actorID, ok := s.requestScope(w, r)
	if !ok {
		return
	}

	result := s.safeDelete.Validate(r.Context(), entityType, entityID, actorID)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	entityType, entityID, actorID, ok := s.requestScope(w, r)
	if !ok {
		return
	}

	var req deleteRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var result *contract.SafeDeleteResult
	if req.Hard {
		result = s.safeDelete.HardDelete(r.Context(), entityType, entityID, actorID, req.Reason)
	} else {
		result = s.safeDelete.SoftDelete(r.Context(), entityType, entityID, actorID, req.Reason)
	}
	respondJSON(w, statusForResult(result), result)
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	entityType, entityID, actorID, ok := s.requestScope(w, r)
	if !ok {
		return
	}

	var req restoreRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TargetStatus == 0 {
		req.TargetStatus = int(domain.StatusActive)
	}

	result := s.safeDelete.Restore(r.Context(), entityType, entityID, actorID, domain.EntityStatus(req.TargetStatus))
	respondJSON(w, statusForResult(result), result)
}

func (s *Server) handleRecycleBin(w http.ResponseWriter, r *http.Request) {
	actorID := r.Header.Get(actorHeader)
	if actorID == "" {
		respondError(w, http.StatusBadRequest, "missing "+actorHeader+" header")
		return
	}

	q := r.URL.Query()
	page, err := s.recycleBin.List(r.Context(), contract.RecycleBinRequest{
		ActorUserID: actorID,
		Search:      q.Get("search"),
		EntityType:  q.Get("type"),
		Page:        parseIntParam(q.Get("page"), 1),
		PageSize:    parseIntParam(q.Get("pageSize"), 10),
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list recycle bin")
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// requestScope extracts and validates the entity type, entity ID, and actor
// common to the per-entity routes. On failure it writes the error response
// and returns ok=false.
func (s *Server) requestScope(w http.ResponseWriter, r *http.Request) (domain.EntityType, string, string, bool) {
	entityType := domain.EntityType(chi.URLParam(r, "entityType"))
	if !entityType.Valid() {
		respondError(w, http.StatusNotFound, "unknown entity type")
		return "", "", "", false
	}
	entityID := chi.URLParam(r, "entityID")
	actorID := r.Header.Get(actorHeader)
	if actorID == "" {
		respondError(w, http.StatusBadRequest, "missing "+actorHeader+" header")
		return "", "", "", false
	}
	return entityType, entityID, actorID, true
}

// decodeBody decodes an optional JSON body. An empty body leaves the target
// at its zero value.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// statusForResult maps execution outcomes to HTTP status codes: conflicts
// for expected failures, 500 for internal ones.
func statusForResult(result *contract.SafeDeleteResult) int {
	if result.Success {
		return http.StatusOK
	}
	if result.ErrorCode == contract.ErrInternal {
		return http.StatusInternalServerError
	}
	return http.StatusConflict
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}
