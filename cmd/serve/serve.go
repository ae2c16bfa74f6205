// Package serve runs the local dashboard HTTP server.
package serve

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkoskela/airboard/internal/dashboard"
	"github.com/pkoskela/airboard/internal/datastore"
)

// Options configures the dashboard server.
type Options struct {
	DBFile     string
	ListenAddr string
}

// Run opens the store read-only and serves the dashboard until the process
// is interrupted. It fails before binding the listener when the store is
// missing or empty.
func Run(opts Options) error {
	reader, err := datastore.OpenReader(opts.DBFile)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	srv := dashboard.NewServer(reader)

	slog.Info("Dashboard listening", "addr", "http://"+opts.ListenAddr, "db", opts.DBFile)

	httpSrv := &http.Server{
		Addr:              opts.ListenAddr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return fmt.Errorf("dashboard server stopped: %w", httpSrv.ListenAndServe())
}
