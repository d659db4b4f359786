package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/zhilongzheng/friday-tasks/internal/repository"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeRepoError maps a repository failure onto the error taxonomy: unknown
// id -> 404 with the entity-specific message, anything else -> 500 carrying
// the raw error message.
func writeRepoError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// pathID parses the {id} path segment. A non-numeric id reads as 0, which no
// row ever has, so lookups fall through to NotFound.
func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id
}
