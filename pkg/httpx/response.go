package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData wraps v in the conventional {"data": ...} envelope.
func WriteData(w http.ResponseWriter, code int, v any) {
	WriteJSON(w, code, map[string]any{"data": v})
}

// WriteError writes the structured {"error":{"code","message"}} envelope the
// frontend keys its error handling off.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Required for responses that set auth cookies.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
