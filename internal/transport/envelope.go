package transport

import (
	"encoding/json"
	"net/http"
)

// Envelope wraps every REST response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// CountResult is returned by bulk operations.
type CountResult struct {
	Count int `json:"count"`
}

// WriteSuccess writes a successful envelope.
func WriteSuccess(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// WriteError writes a failed envelope.
func WriteError(w http.ResponseWriter, status int, errLabel, message string) {
	writeJSON(w, status, Envelope{
		Success: false,
		Error:   errLabel,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
