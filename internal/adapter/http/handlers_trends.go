package adapthttp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"wellness/internal/app"
)

// maxTrendDays caps the published trend window. The aggregation itself is
// day-count-agnostic; the cap is boundary policy.
const maxTrendDays = 30

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	lastDays, err := strconv.Atoi(r.URL.Query().Get("last_days"))
	if err != nil || lastDays < 1 || lastDays > maxTrendDays {
		writeError(w, http.StatusBadRequest,
			fmt.Errorf("last_days must be an integer between 1 and %d", maxTrendDays))
		return
	}

	kind, err := app.ParseMetricKind(r.URL.Query().Get("metric_type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	trends, err := s.trends.Trends(r.Context(), userFrom(r).ID, lastDays, kind)
	if errors.Is(err, app.ErrNoTrendData) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, trends)
}
