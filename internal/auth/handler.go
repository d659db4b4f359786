package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// HeaderToken is the header mutating routes are gated on.
const HeaderToken = "X-Auth-Token"

type loginRequest struct {
	Password string `json:"password"`
}

type Handler struct {
	svc Service
	log *slog.Logger
}

func NewHandler(svc Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	token, err := h.svc.Login(req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid password"})
			return
		}
		h.log.Error("login failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

// Verify handles POST /api/auth/verify. It always answers 200 with a
// validity flag.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(HeaderToken)
	valid := token != "" && h.svc.Tokens().Verify(token)
	writeJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := r.Header.Get(HeaderToken); token != "" {
		h.svc.Tokens().Revoke(token)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
