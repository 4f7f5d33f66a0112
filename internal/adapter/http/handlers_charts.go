package adapthttp

import (
	"net/http"
	"time"
)

func (s *Server) handleChartSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user := userFromContext(r)
	timeframe := r.URL.Query().Get("timeframe")
	if timeframe == "" {
		timeframe = "all"
	}

	series, err := s.charts.GetSeries(r.Context(), user.ID, timeframe, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}
