// Package dashboard serves the local web dashboard over the synced store.
package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/pkoskela/airboard/internal/datastore"
)

// defaultLimit caps /api/applications responses unless the caller asks for less.
const defaultLimit = 1000

// topCountries is how many bars the countries chart shows.
const topCountries = 10

// Server answers dashboard page and JSON API requests. Every request
// re-queries the store, so a fresh sync shows up on the next reload.
type Server struct {
	router chi.Router
	reader *datastore.Reader
}

// NewServer builds a dashboard server over an opened store reader.
func NewServer(reader *datastore.Reader) *Server {
	srv := &Server{
		router: chi.NewRouter(),
		reader: reader,
	}
	srv.routes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			slog.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Get("/", s.handleIndex)
	s.router.Get("/api/applications", s.handleApplications)
	s.router.Get("/api/stats", s.handleStats)
	s.router.Get("/api/cohorts", s.handleCohorts)
	s.router.Get("/api/charts/countries", s.handleCountryChart)
	s.router.Get("/api/charts/revenue", s.handleRevenueChart)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "status", status, "error", err)
	} else {
		slog.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
