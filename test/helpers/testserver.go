package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"carpicks_backend/database"
	"carpicks_backend/internal/app"
	"carpicks_backend/internal/config"

	"gorm.io/gorm"
)

// TestServer wraps an httptest server bound to the real router and a
// database handle for direct fixture setup.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Config *config.Config
}

// NewTestServer connects to the database named by DATABASE_URL, migrates
// the schema and starts the fully wired router on an httptest server.
func NewTestServer(t *testing.T) *TestServer {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load test config: %v", err)
	}

	db, err := app.OpenDatabase(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to test database (%s): %v", cfg.Database.DSN, err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	router := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	return &TestServer{
		Server: server,
		DB:     db,
		Config: cfg,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// ClearTables truncates everything. Call it only from tests that need a
// known-empty table (listing counts, aggregations); ordinary tests use
// unique emails instead and leave their rows behind.
func (ts *TestServer) ClearTables(t *testing.T) {
	if err := ts.DB.Exec("TRUNCATE TABLE users, cars RESTART IDENTITY CASCADE").Error; err != nil {
		t.Fatalf("Failed to clear tables: %v", err)
	}
}

// NewClient returns an http client with its own cookie jar, so each test
// actor carries its own session cookie.
func (ts *TestServer) NewClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

// SendRequest sends a JSON request through the given client and returns the
// response plus the fully read body.
func (ts *TestServer) SendRequest(t *testing.T, client *http.Client, method, path string, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request JSON: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Failed to create HTTP request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("Failed to send HTTP request: %v", err)
	}

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBodyBytes)
}

// DecodeJSON unmarshals a response body into the given target
func DecodeJSON(t *testing.T, body string, target interface{}) {
	if err := json.Unmarshal([]byte(body), target); err != nil {
		t.Fatalf("Failed to decode response JSON %q: %v", body, err)
	}
}
