package adapthttp

import (
	"errors"
	"net/http"

	"wellness/internal/app"
)

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, userFrom(r))
	case http.MethodPut:
		s.handleAccountUpdate(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAccountUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name *string `json:"name"`
		Age  *int    `json:"age"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := s.auth.UpdateProfile(r.Context(), userFrom(r).ID, req.Name, req.Age)
	if errors.Is(err, app.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if app.IsValidationError(err) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
