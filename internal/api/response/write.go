package response

import (
	"encoding/json"
	"net/http"
)

// Health is the body of the health endpoint
type Health struct {
	Status string `json:"status"`
}

// JSON writes a JSON response. Game views change with every move so
// responses are never cached.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}
