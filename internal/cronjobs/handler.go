package cronjobs

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Handler struct {
	src *Source
	log *slog.Logger
}

func NewHandler(src *Source, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{src: src, log: log}
}

// List handles GET /api/cron-jobs: enabled jobs from the external file, or []
// when the file is absent.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.src.Enabled()
	if err != nil {
		h.log.Error("read cron jobs", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(jobs)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
