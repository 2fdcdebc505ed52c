package handlers

import (
	"encoding/json"
	"net/http"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

const unknownLabel = "unknown"

// nameOrUnknown renders a dangling category or account reference as
// "unknown" rather than an empty string.
func nameOrUnknown(value *string) string {
	if value == nil || *value == "" {
		return unknownLabel
	}
	return *value
}
