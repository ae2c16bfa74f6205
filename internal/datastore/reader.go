package datastore

import (
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/pkoskela/airboard/internal/schema"
)

// Application is the subset of row columns the dashboard presents directly.
type Application struct {
	AirtableID        string `db:"airtable_id" json:"airtable_id"`
	Cohort            string `db:"cohort" json:"cohort"`
	StartupName       string `db:"startup_name" json:"startup_name"`
	ContactEmail      string `db:"contact_email" json:"contact_email"`
	Country           string `db:"country" json:"country"`
	ApplicationStatus string `db:"application_status" json:"application_status"`
	RevenueGenerating string `db:"revenue_generating" json:"revenue_generating"`
	TotalRaisedUSD    string `db:"total_raised_usd" json:"total_raised_usd"`
	CreatedAt         string `db:"created_at" json:"created_at"`
}

// Stats are the headline numbers shown on the dashboard.
type Stats struct {
	TotalApplications int     `db:"total_apps" json:"total_applications"`
	TotalCountries    int     `db:"total_countries" json:"total_countries"`
	TotalRaisedUSD    float64 `db:"total_raised" json:"total_raised_usd"`
}

// LabelCount is a single chart slice or bar.
type LabelCount struct {
	Label string `db:"label" json:"label"`
	Count int    `db:"count" json:"count"`
}

// Filter narrows dashboard queries. Zero values mean no restriction.
type Filter struct {
	Cohort    string
	Status    string
	MinRaised float64
}

func (f Filter) where() (string, []any) {
	var conds []string
	var args []any

	if f.Cohort != "" {
		conds = append(conds, fmt.Sprintf("%s = ?", schema.ColCohort))
		args = append(args, f.Cohort)
	}
	if f.Status != "" {
		conds = append(conds, fmt.Sprintf("%s = ?", schema.ColApplicationStatus))
		args = append(args, f.Status)
	}
	if f.MinRaised > 0 {
		conds = append(conds, fmt.Sprintf("CAST(%s AS REAL) >= ?", schema.ColTotalRaisedUSD))
		args = append(args, f.MinRaised)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Reader provides read-only queries over the local store for the dashboard.
type Reader struct {
	db *sqlx.DB
}

// OpenReader opens the store read-only and verifies it actually contains
// synced data. A missing file, a missing applications table or an empty
// table all fail here so serve can refuse to start before binding a port.
func OpenReader(dbPath string) (*Reader, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("store %s not found, run 'airboard sync' first: %w", dbPath, err)
	}

	db, err := sqlx.Connect("sqlite", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", dbPath, err)
	}

	var count int
	if err := db.Get(&count, fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.Table)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store %s has no %s table, run 'airboard sync' first: %w", dbPath, schema.Table, err)
	}
	if count == 0 {
		_ = db.Close()
		return nil, fmt.Errorf("store %s is empty, run 'airboard sync' first", dbPath)
	}

	return &Reader{db: db}, nil
}

// Applications returns up to limit rows matching the filter, newest first.
func (r *Reader) Applications(limit int, f Filter) ([]Application, error) {
	where, args := f.where()
	query := fmt.Sprintf(`
		SELECT
			COALESCE(%s, '') AS airtable_id,
			COALESCE(%s, '') AS cohort,
			COALESCE(%s, '') AS startup_name,
			COALESCE(%s, '') AS contact_email,
			COALESCE(%s, '') AS country,
			COALESCE(%s, '') AS application_status,
			COALESCE(%s, '') AS revenue_generating,
			COALESCE(%s, '') AS total_raised_usd,
			COALESCE(%s, '') AS created_at
		FROM %s%s
		ORDER BY created_at DESC
		LIMIT ?`,
		schema.ColAirtableID, schema.ColCohort, schema.ColStartupName,
		schema.ColContactEmail, schema.ColCountry, schema.ColApplicationStatus,
		schema.ColRevenueGenerating, schema.ColTotalRaisedUSD, schema.ColCreatedAt,
		schema.Table, where,
	)
	args = append(args, limit)

	var apps []Application
	if err := r.db.Select(&apps, query, args...); err != nil {
		return nil, fmt.Errorf("applications query failed: %w", err)
	}
	return apps, nil
}

// GetStats aggregates the headline dashboard numbers.
func (r *Reader) GetStats(f Filter) (*Stats, error) {
	where, args := f.where()
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) AS total_apps,
			COUNT(DISTINCT CASE WHEN %[1]s IS NOT NULL AND %[1]s != '' THEN %[1]s END) AS total_countries,
			COALESCE(SUM(CAST(%[2]s AS REAL)), 0) AS total_raised
		FROM %[3]s%[4]s`,
		schema.ColCountry, schema.ColTotalRaisedUSD, schema.Table, where,
	)

	var stats Stats
	if err := r.db.Get(&stats, query, args...); err != nil {
		return nil, fmt.Errorf("stats query failed: %w", err)
	}
	return &stats, nil
}

// CountryCounts returns the top countries by application count.
func (r *Reader) CountryCounts(limit int, f Filter) ([]LabelCount, error) {
	return r.labelCounts(schema.ColCountry, limit, f)
}

// RevenueCounts groups applications by revenue-generating status.
func (r *Reader) RevenueCounts(f Filter) ([]LabelCount, error) {
	return r.labelCounts(schema.ColRevenueGenerating, 0, f)
}

func (r *Reader) labelCounts(column string, limit int, f Filter) ([]LabelCount, error) {
	where, args := f.where()
	query := fmt.Sprintf(`
		SELECT COALESCE(NULLIF(%[1]s, ''), 'Unknown') AS label, COUNT(*) AS count
		FROM %[2]s%[3]s
		GROUP BY label
		ORDER BY count DESC, label ASC`,
		column, schema.Table, where,
	)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var counts []LabelCount
	if err := r.db.Select(&counts, query, args...); err != nil {
		return nil, fmt.Errorf("%s counts query failed: %w", column, err)
	}
	return counts, nil
}

// Cohorts returns the distinct cohort labels present in the store.
func (r *Reader) Cohorts() ([]string, error) {
	var cohorts []string
	query := fmt.Sprintf(
		"SELECT DISTINCT %[1]s FROM %[2]s WHERE %[1]s IS NOT NULL AND %[1]s != '' ORDER BY %[1]s",
		schema.ColCohort, schema.Table,
	)
	if err := r.db.Select(&cohorts, query); err != nil {
		return nil, fmt.Errorf("cohorts query failed: %w", err)
	}
	return cohorts, nil
}

// Close closes the read-only connection.
func (r *Reader) Close() error {
	return r.db.Close()
}
