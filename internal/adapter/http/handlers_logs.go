package adapthttp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"wellness/internal/app"
	"wellness/internal/domain"
)

// logPayload is the wire form for both log creation and sparse updates: any
// metric field may be absent, and absent means "no data", not zero.
type logPayload struct {
	LogDate         string   `json:"logDate"`
	Steps           *int     `json:"steps"`
	ExerciseMinutes *int     `json:"exerciseMinutes"`
	SleepHours      *float64 `json:"sleepHours"`
	WaterLiters     *float64 `json:"waterLiters"`
	DietScore       *int     `json:"dietScore"`
	Mood            *int     `json:"mood"`
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleLogCreate(w, r)
	case http.MethodPut:
		s.handleLogUpdate(w, r)
	case http.MethodGet:
		s.handleLogList(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogCreate(w http.ResponseWriter, r *http.Request) {
	var body logPayload
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	log, err := s.logs.Create(r.Context(), userFrom(r).ID, domain.DailyLog{
		LogDate:         body.LogDate,
		Steps:           body.Steps,
		ExerciseMinutes: body.ExerciseMinutes,
		SleepHours:      body.SleepHours,
		WaterLiters:     body.WaterLiters,
		DietScore:       body.DietScore,
		Mood:            body.Mood,
	})
	if errors.Is(err, domain.ErrLogExists) {
		writeError(w, http.StatusConflict,
			fmt.Errorf("a log already exists for %s, use PUT to update it", body.LogDate))
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
	writeJSON(w, http.StatusCreated, log)
}

func (s *Server) handleLogUpdate(w http.ResponseWriter, r *http.Request) {
	var body logPayload
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// The date from the payload only selects the record; the patch itself
	// carries no date, so the key cannot be rewritten.
	log, err := s.logs.Update(r.Context(), userFrom(r).ID, body.LogDate, domain.LogPatch{
		Steps:           body.Steps,
		ExerciseMinutes: body.ExerciseMinutes,
		SleepHours:      body.SleepHours,
		WaterLiters:     body.WaterLiters,
		DietScore:       body.DietScore,
		Mood:            body.Mood,
	})
	if errors.Is(err, domain.ErrLogNotFound) {
		writeError(w, http.StatusNotFound,
			fmt.Errorf("no log exists for %s", body.LogDate))
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
	writeJSON(w, http.StatusOK, log)
}

func (s *Server) handleLogList(w http.ResponseWriter, r *http.Request) {
	if day := r.URL.Query().Get("date"); day != "" {
		s.handleLogGet(w, r, day)
		return
	}

	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("days must be a positive integer, got %q", v))
			return
		}
		days = n
	}

	items, err := s.logs.ListRecent(r.Context(), userFrom(r).ID, days)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleLogGet(w http.ResponseWriter, r *http.Request, day string) {
	log, err := s.logs.Get(r.Context(), userFrom(r).ID, day)
	if errors.Is(err, domain.ErrLogNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("no log exists for %s", day))
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, log)
}
