// Package sync implements the Airtable-to-SQLite refresh pipeline.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/pkoskela/airboard/internal/airtable"
	"github.com/pkoskela/airboard/internal/datastore"
	apperrors "github.com/pkoskela/airboard/internal/errors"
	"github.com/pkoskela/airboard/internal/schema"
)

// Options configures a sync run.
type Options struct {
	APIKey string
	BaseID string
	Tables []string
	DBFile string

	// BaseURL overrides the Airtable endpoint, used by tests.
	BaseURL string
}

// Run fetches every configured table and replaces the local store contents.
// A table the token cannot see is skipped with a warning; any other API
// error aborts the run and leaves the previous store contents in place.
func Run(opts Options) error {
	var clientOpts []airtable.Option
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, airtable.WithBaseURL(opts.BaseURL))
	}
	client := airtable.NewClient(opts.APIKey, opts.BaseID, clientOpts...)

	ctx := context.Background()
	rows, err := fetchAll(ctx, client, opts.Tables)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no records found in base %s", opts.BaseID)
	}

	var store datastore.Store = datastore.NewSQLiteStore(opts.DBFile)
	if err := store.Connect(); err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Replace(extraColumns(rows), rows); err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}

	slog.Info("Store updated", "rows", len(rows), "db", opts.DBFile)
	return nil
}

func fetchAll(ctx context.Context, client *airtable.Client, tables []string) ([]map[string]any, error) {
	var rows []map[string]any

	for _, table := range tables {
		slog.Info("Fetching table", "table", table)

		records, err := client.ListRecords(ctx, table)
		if err != nil {
			if apperrors.IsTableNotFoundError(err) {
				slog.Warn("Table skipped", "table", table, "error", err)
				continue
			}
			return nil, fmt.Errorf("failed to fetch %q: %w", table, err)
		}

		cohort := cohortLabel(table)
		for _, rec := range records {
			row := schema.FlattenFields(rec.Fields)
			row[schema.ColAirtableID] = rec.ID
			row[schema.ColCreatedAt] = rec.CreatedTime
			row[schema.ColCohort] = cohort
			rows = append(rows, row)
		}

		slog.Info("Fetched table", "table", table, "records", len(records))
	}

	return rows, nil
}

// cohortLabel derives the cohort from the table name, e.g.
// "AA3 Application Responses_closed" -> "AA3".
func cohortLabel(table string) string {
	fields := strings.Fields(table)
	if len(fields) == 0 {
		return table
	}
	return fields[0]
}

// extraColumns collects the dynamic columns found in the rows beyond the
// schema base set, sorted for stable DDL.
func extraColumns(rows []map[string]any) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			if !schema.IsBaseColumn(col) {
				seen[col] = true
			}
		}
	}

	extras := make([]string, 0, len(seen))
	for col := range seen {
		extras = append(extras, col)
	}
	sort.Strings(extras)
	return extras
}
