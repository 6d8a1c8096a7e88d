package api

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/emerytura/internal/calculation"
	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/rgehrsitz/emerytura/internal/insights"
	"github.com/rgehrsitz/emerytura/internal/usage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	store  *usage.MemoryStore
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	engine := calculation.NewCalculationEngine()
	engine.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	store := usage.NewMemoryStore()
	recorder := usage.NewRecorder(engine, store)
	n := 0
	recorder.NewID = func() string { n++; return fmt.Sprintf("sim-%d", n) }
	recorder.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	h := NewHandler(recorder)
	h.CurrentYear = func() int { return 2025 }
	h.Rand = rand.New(rand.NewPCG(7, 11))

	return &testServer{store: store, router: NewRouter(h, nil)}
}

func (ts *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) seed(t *testing.T, records ...usage.Record) {
	t.Helper()
	for _, r := range records {
		require.NoError(t, ts.store.Append(context.Background(), r))
	}
}

func seedRecord(id string, at time.Time, age int, gender domain.Gender, postal string) usage.Record {
	return usage.Record{
		ID:             id,
		Timestamp:      at,
		Age:            age,
		Gender:         gender,
		GrossSalary:    decimal.NewFromInt(6000),
		NominalPension: 2100,
		RealPension:    1200,
		PostalCode:     postal,
	}
}

const validSimulation = `{
	"age": 30,
	"gender": "m",
	"grossSalary": 5000,
	"startYear": 2020,
	"endYear": 2060,
	"includeSickLeave": true,
	"expectedPension": "900",
	"postalCode": "00-950"
}`

func TestCreateSimulation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/simulations", validSimulation)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp SimulationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sim-1", resp.ID)
	assert.Positive(t, resp.Result.NominalPension)
	assert.Len(t, resp.Result.DelayBenefits, 3)
	require.NotNil(t, resp.Result.PensionWithSickLeave)
	require.NotNil(t, resp.Result.YearsNeededForExpected)
	assert.Contains(t, insights.Facts(), resp.Fact)
	assert.NotEmpty(t, resp.Group.Name)

	stored, err := ts.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "00-950", stored[0].PostalCode)
	assert.Equal(t, domain.GenderMale, stored[0].Gender, "Gender is normalised before recording")
	assert.Equal(t, resp.Result.NominalPension, stored[0].NominalPension)
}

func TestCreateSimulation_ValidationErrors(t *testing.T) {
	ts := newTestServer(t)

	body := `{"age": 12, "gender": "X", "grossSalary": 50, "startYear": 2020, "endYear": 2010}`
	rec := ts.do(t, http.MethodPost, "/api/simulations", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error   string `json:"error"`
		Code    string `json:"code"`
		Details []struct {
			Field string `json:"field"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failed", resp.Code)

	fields := make([]string, 0, len(resp.Details))
	for _, d := range resp.Details {
		fields = append(fields, d.Field)
	}
	assert.Contains(t, fields, "age")
	assert.Contains(t, fields, "gender")
	assert.Contains(t, fields, "grossSalary")
	assert.Contains(t, fields, "endYear")

	stored, _ := ts.store.List(context.Background())
	assert.Empty(t, stored, "Rejected requests are not recorded")
}

func TestCreateSimulation_BadPostalCode(t *testing.T) {
	ts := newTestServer(t)
	body := strings.Replace(validSimulation, `"00-950"`, `"00950"`, 1)

	rec := ts.do(t, http.MethodPost, "/api/simulations", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "postalCode")
}

func TestCreateSimulation_MalformedBody(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"unknown field", `{"age": 30, "salary": 5000}`},
		{"wrong type", `{"age": "thirty"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/simulations", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid request body")
		})
	}
}

func TestListUsage(t *testing.T) {
	ts := newTestServer(t)
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	ts.seed(t,
		seedRecord("a", day.Add(9*time.Hour), 30, domain.GenderMale, "00-950"),
		seedRecord("b", day.Add(23*time.Hour), 45, domain.GenderFemale, "31-100"),
		seedRecord("c", day.AddDate(0, 0, 1).Add(time.Hour), 52, domain.GenderFemale, "00-001"),
	)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"all", "", []string{"a", "b", "c"}},
		{"gender", "?gender=k", []string{"b", "c"}},
		{"age range", "?ageMin=40&ageMax=50", []string{"b"}},
		{"search", "?search=00-", []string{"a", "c"}},
		{"date-only upper bound covers the day", "?dateTo=2025-05-10", []string{"a", "b"}},
		{"date-only lower bound", "?dateFrom=2025-05-11", []string{"c"}},
		{"rfc3339 bound", "?dateTo=2025-05-10T12:00:00Z", []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodGet, "/api/usage"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var page usage.Page
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
			ids := make([]string, len(page.Records))
			for i, r := range page.Records {
				ids[i] = r.ID
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), page.Total)
		})
	}
}

func TestListUsage_Pagination(t *testing.T) {
	ts := newTestServer(t)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 30 {
		ts.seed(t, seedRecord(fmt.Sprintf("r%02d", i), start.Add(time.Duration(i)*time.Hour), 30, domain.GenderMale, ""))
	}

	rec := ts.do(t, http.MethodGet, "/api/usage?page=2&pageSize=25", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page usage.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 30, page.Total)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Records, 5)
	assert.Equal(t, "r25", page.Records[0].ID)
}

func TestListUsage_InvalidFilter(t *testing.T) {
	ts := newTestServer(t)

	for _, q := range []string{
		"?pageSize=7",
		"?page=x",
		"?gender=Z",
		"?ageMin=50&ageMax=40",
		"?dateFrom=yesterday",
	} {
		t.Run(q, func(t *testing.T) {
			rec := ts.do(t, http.MethodGet, "/api/usage"+q, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid filter")
		})
	}
}

func TestExportUsage(t *testing.T) {
	ts := newTestServer(t)
	at := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)
	ts.seed(t,
		seedRecord("a", at, 30, domain.GenderMale, "00-950"),
		seedRecord("b", at, 45, domain.GenderFemale, "31-100"),
	)

	rec := ts.do(t, http.MethodGet, "/api/usage/export?gender=K", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "b", rows[1][0])
}

func TestExportUsage_InvalidFilter(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/usage/export?pageSize=3", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

type errorLogger struct {
	calculation.NopLogger
	lines []string
}

func (l *errorLogger) Errorf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestHandler_LogsResponseWriteFailures(t *testing.T) {
	recorder := usage.NewRecorder(calculation.NewCalculationEngine(), usage.NewMemoryStore())
	logger := &errorLogger{}
	recorder.Logger = logger
	h := NewHandler(recorder)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		target  string
		want    string
	}{
		{"csv export", h.ExportUsage, "/api/usage/export", "failed to export usage"},
		{"json body", h.RandomFact, "/api/facts/random", "failed to write response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger.lines = nil
			w := brokenWriter{httptest.NewRecorder()}
			tt.handler(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Len(t, logger.lines, 1)
			assert.Contains(t, logger.lines[0], tt.want)
			assert.Contains(t, logger.lines[0], "connection reset")
		})
	}
}

func TestListPensionGroups(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/pension-groups", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var groups []insights.PensionGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	assert.Len(t, groups, len(insights.PensionGroups()))
}

func TestRandomFact(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/facts/random", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp FactResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, insights.Facts(), resp.Fact)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/simulations", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestParseFilter_DateToEndOfDay(t *testing.T) {
	f, err := parseFilter(map[string][]string{"dateTo": {"2025-05-10"}})
	require.NoError(t, err)
	require.NotNil(t, f.DateTo)
	assert.Equal(t, time.Date(2025, 5, 10, 23, 59, 59, 999999999, time.UTC), *f.DateTo)
}
