package dashboard

import (
	_ "embed"
	"net/http"
	"strconv"

	"github.com/pkoskela/airboard/internal/datastore"
)

//go:embed index.html
var indexHTML []byte

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}

// filterFromRequest builds the row filter from the shared query parameters
// (cohort, status, min_raised) accepted by every data endpoint.
func filterFromRequest(r *http.Request) (datastore.Filter, error) {
	f := datastore.Filter{
		Cohort: r.URL.Query().Get("cohort"),
		Status: r.URL.Query().Get("status"),
	}

	if v := r.URL.Query().Get("min_raised"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			return datastore.Filter{}, errInvalidMinRaised
		}
		f.MinRaised = parsed
	}

	return f, nil
}

func (s *Server) handleApplications(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, errInvalidLimit)
			return
		}
		limit = parsed
	}

	filter, err := filterFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	apps, err := s.reader.Applications(limit, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(apps),
		"data":  apps,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	stats, err := s.reader.GetStats(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleCohorts(w http.ResponseWriter, r *http.Request) {
	cohorts, err := s.reader.Cohorts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cohorts": cohorts})
}

func (s *Server) handleCountryChart(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	counts, err := s.reader.CountryCounts(topCountries, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"counts": counts})
}

func (s *Server) handleRevenueChart(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	counts, err := s.reader.RevenueCounts(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"counts": counts})
}
