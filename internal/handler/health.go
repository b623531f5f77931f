package handler

import "net/http"

// GetHealth reports liveness. It intentionally does not touch the database;
// a degraded database shows up in request errors, not in liveness.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
