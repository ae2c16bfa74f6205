package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkoskela/airboard/internal/datastore"
	"github.com/pkoskela/airboard/internal/schema"
	"github.com/pkoskela/airboard/internal/testutil"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	env := testutil.NewTestEnv(t)
	dbPath := env.Path("airboard.db")

	store := datastore.NewSQLiteStore(dbPath)
	require.NoError(t, store.Connect())
	rows := []map[string]any{
		{
			schema.ColAirtableID:        "rec1",
			schema.ColCohort:            "AA1",
			schema.ColStartupName:       "Acme Solar",
			schema.ColCountry:           "Kenya",
			schema.ColApplicationStatus: "Shortlisted",
			schema.ColTotalRaisedUSD:    "100000",
			schema.ColRevenueGenerating: "Yes",
			schema.ColCreatedAt:         "2023-04-01T09:00:00.000Z",
		},
		{
			schema.ColAirtableID:        "rec2",
			schema.ColCohort:            "AA2",
			schema.ColStartupName:       "AgriChain",
			schema.ColCountry:           "Ghana",
			schema.ColApplicationStatus: "Rejected",
			schema.ColTotalRaisedUSD:    "50000",
			schema.ColRevenueGenerating: "No",
			schema.ColCreatedAt:         "2024-01-02T09:00:00.000Z",
		},
		{
			schema.ColAirtableID:        "rec3",
			schema.ColCohort:            "AA2",
			schema.ColStartupName:       "MediDrop",
			schema.ColCountry:           "Ghana",
			schema.ColApplicationStatus: "Approved",
			schema.ColTotalRaisedUSD:    "250000",
			schema.ColRevenueGenerating: "Yes",
			schema.ColCreatedAt:         "2024-02-15T09:00:00.000Z",
		},
	}
	require.NoError(t, store.Replace(nil, rows))
	require.NoError(t, store.Close())

	reader, err := datastore.OpenReader(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })

	return NewServer(reader)
}

func doGet(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := doGet(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t)

	rec := doGet(t, srv, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Airboard")
	assert.Contains(t, rec.Body.String(), "/api/stats")
}

func TestApplicationsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doGet(t, srv, "/api/applications")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int                     `json:"count"`
		Data  []datastore.Application `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 3, resp.Count)
	require.Len(t, resp.Data, 3)
	// newest first
	assert.Equal(t, "MediDrop", resp.Data[0].StartupName)
}

func TestApplicationsEndpoint_CohortFilter(t *testing.T) {
	srv := newTestServer(t)

	rec := doGet(t, srv, "/api/applications?cohort=AA1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int                     `json:"count"`
		Data  []datastore.Application `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Acme Solar", resp.Data[0].StartupName)
}

func TestApplicationsEndpoint_StatusFilter(t *testing.T) {
	srv := newTestServer(t)

	rec := doGet(t, srv, "/api/applications?status=Shortlisted")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int                     `json:"count"`
		Data  []datastore.Application `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Acme Solar", resp.Data[0].StartupName)

	rec = doGet(t, srv, "/api/applications?status=Approved")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "MediDrop", resp.Data[0].StartupName)
}

func TestApplicationsEndpoint_MinRaisedFilter(t *testing.T) {
	srv := newTestServer(t)

	rec := doGet(t, srv, "/api/applications?min_raised=100000")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int                     `json:"count"`
		Data  []datastore.Application `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "MediDrop", resp.Data[0].StartupName)
	assert.Equal(t, "Acme Solar", resp.Data[1].StartupName)
}

func TestApplicationsEndpoint_InvalidMinRaised(t *testing.T) {
	srv := newTestServer(t)

	rec := doGet(t, srv, "/api/applications?min_raised=lots")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "min_raised")

	rec = doGet(t, srv, "/api/applications?min_raised=-5")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplicationsEndpoint_InvalidLimit(t *testing.T) {
	srv := newTestServer(t)

	rec := doGet(t, srv, "/api/applications?limit=bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "limit")
}

func TestStatsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doGet(t, srv, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats datastore.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))

	assert.Equal(t, 3, stats.TotalApplications)
	assert.Equal(t, 2, stats.TotalCountries)
	assert.InDelta(t, 400000, stats.TotalRaisedUSD, 0.01)
}

func TestStatsEndpoint_StatusFilter(t *testing.T) {
	srv := newTestServer(t)

	rec := doGet(t, srv, "/api/stats?status=Approved")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats datastore.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))

	assert.Equal(t, 1, stats.TotalApplications)
	assert.InDelta(t, 250000, stats.TotalRaisedUSD, 0.01)
}

func TestCohortsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doGet(t, srv, "/api/cohorts")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Cohorts []string `json:"cohorts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"AA1", "AA2"}, resp.Cohorts)
}

func TestCountryChartEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doGet(t, srv, "/api/charts/countries")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Counts []datastore.LabelCount `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Counts, 2)
	assert.Equal(t, datastore.LabelCount{Label: "Ghana", Count: 2}, resp.Counts[0])
	assert.Equal(t, datastore.LabelCount{Label: "Kenya", Count: 1}, resp.Counts[1])
}

func TestRevenueChartEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doGet(t, srv, "/api/charts/revenue?cohort=AA2")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Counts []datastore.LabelCount `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Counts, 2)
	assert.ElementsMatch(t, []datastore.LabelCount{
		{Label: "Yes", Count: 1},
		{Label: "No", Count: 1},
	}, resp.Counts)
}
