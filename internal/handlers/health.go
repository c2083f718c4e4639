package handlers

import "net/http"

// Healthz reports liveness with an empty 200 response.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
