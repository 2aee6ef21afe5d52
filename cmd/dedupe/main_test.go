package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"contact-dedupe/internal/config"
	"contact-dedupe/internal/contact"
	"contact-dedupe/internal/matching"
	"contact-dedupe/internal/report"
	"contact-dedupe/internal/scheduler"
	"contact-dedupe/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contactsCSV = `Contact ID,First Name,Last Name,Email,Postal Zip,Address
1,John,Smith,john.smith@email.com,12345,123 Apple St
2,John,Smith,john.smith@email.com,12345,123 Apple Street
21,Alice,Walker,alice.w@email.com,11111,5 Elm St
22,Alicia,Walker,alice.w@email.com,11112,5 Elm Street
`

func writeContacts(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.csv")
	require.NoError(t, os.WriteFile(path, []byte(contactsCSV), 0o600))
	return path
}

func TestRunScan_Table(t *testing.T) {
	var out bytes.Buffer
	opts := scanOptions{source: sourceFile, format: formatTable}

	err := runScan(context.Background(), &out, config.TestConfig(), opts, writeContacts(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, report.Header, lines[0])
	assert.Equal(t, "1                2                        Alta", lines[1])
	assert.Equal(t, "21               22                       Media", lines[2])
}

func TestRunScan_JSONWithWorkers(t *testing.T) {
	var out bytes.Buffer
	opts := scanOptions{source: sourceFile, format: formatJSON, workers: 3}

	err := runScan(context.Background(), &out, config.TestConfig(), opts, writeContacts(t))
	require.NoError(t, err)

	var doc report.Document
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, 4, doc.Contacts)
	assert.Equal(t, 6, doc.Pairs)
	assert.Equal(t, map[string]int{"high": 1, "medium": 1, "low": 0}, doc.Summary)
	require.Len(t, doc.Results, 2)
	assert.Equal(t, 1, doc.Results[0].OriginID)
	assert.Equal(t, 21, doc.Results[1].OriginID)
}

func TestRunScan_LogFormatWritesNothingToOut(t *testing.T) {
	var out bytes.Buffer
	opts := scanOptions{source: sourceFile, format: formatLog}

	require.NoError(t, runScan(context.Background(), &out, config.TestConfig(), opts, writeContacts(t)))
	assert.Empty(t, out.String())
}

func TestRunScan_Errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    scanOptions
		path    string
		wantErr string
	}{
		{"unknown format", scanOptions{source: sourceFile, format: "xml"}, "contacts.csv", "unknown output format"},
		{"unknown source", scanOptions{source: "ldap", format: formatTable}, "contacts.csv", "unknown contact source"},
		{"postgres without url", scanOptions{source: sourcePostgres, format: formatTable}, "", "DATABASE_URL is required"},
		{"missing file", scanOptions{source: sourceFile, format: formatTable}, "does-not-exist.csv", "failed to open contact file"},
		{"unsupported file", scanOptions{source: sourceFile, format: formatTable}, "contacts.txt", "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runScan(context.Background(), &bytes.Buffer{}, config.TestConfig(), tt.opts, tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScanCommand(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"scan", writeContacts(t), "--workers", "2"})

	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(out.String(), report.Header+"\n"))
	assert.Contains(t, out.String(), "Alta")
}

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newRouter(config.TestConfig(), nil, nil)

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("matches", func(t *testing.T) {
		body := `{"contacts":[
			{"id":1,"given_name":"John","surname":"Smith","email":"john.smith@email.com","postal_code":"12345","address":"123 Apple St"},
			{"id":2,"given_name":"John","surname":"Smith","email":"john.smith@email.com","postal_code":"12345","address":"123 Apple Street"}
		]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/matches", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		assert.Contains(t, w.Body.String(), `"label":"Alta"`)
	})

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "dedupe_engine_pairs_total")
	})

	t.Run("scans disabled without schedule", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scans/latest", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestNewRouter_LatestScan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.TestConfig()
	sched := scheduler.NewScheduler("@every 1h",
		service.NewDedupeService(matching.NewEngine(1)),
		contact.FileSource{Path: writeContacts(t)})
	router := newRouter(cfg, nil, sched)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scans/latest", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"NOT_FOUND"`)

	_, err := sched.RunNow(context.Background())
	require.NoError(t, err)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scans/latest", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"label":"Media"`)
}
