// Package testkit holds helpers shared by the package tests: an in-memory
// SQLite database and small HTTP request/response utilities.
package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB opens a private in-memory SQLite database and migrates models into it.
// The single pooled connection keeps the database alive for the whole test.
func DB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if len(models) > 0 {
		require.NoError(t, db.AutoMigrate(models...))
	}
	return db
}

// Envelope mirrors the JSON envelope written by pkg/response.
type Envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// Request describes one call made by Do.
type Request struct {
	Method string
	Path   string
	Body   interface{} // marshalled as JSON unless it is an io.Reader
	Token  string
	Header http.Header
}

// Do serves req against h and returns the recorder.
func Do(t *testing.T, h http.Handler, req Request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	switch b := req.Body.(type) {
	case nil:
	case io.Reader:
		body = b
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	r := httptest.NewRequest(req.Method, req.Path, body)
	if _, isReader := req.Body.(io.Reader); req.Body != nil && !isReader {
		r.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	if req.Token != "" {
		r.Header.Set("Authorization", "Bearer "+req.Token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

// Decode parses the response envelope and, when dest is non-nil, its data.
func Decode(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	if dest != nil {
		require.NotEmpty(t, env.Data, "body: %s", rec.Body.String())
		require.NoError(t, json.Unmarshal(env.Data, dest))
	}
	return env
}
