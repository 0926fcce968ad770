package handlers

import (
	"encoding/json"
	"net/http"

	"gstinvoice/logger"
)

type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// Health reports that the process is serving.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "ok"})
}

// renderPage writes an HTML page, logging template failures.
func renderPage(w http.ResponseWriter, r *http.Request, render func(w http.ResponseWriter) error, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := render(w); err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
