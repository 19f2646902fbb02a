package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

func writeMigrations(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"postgres/001_initial_schema.sql":   "CREATE TABLE teams (id TEXT PRIMARY KEY);\nCREATE TABLE players (id TEXT PRIMARY KEY);\n",
		"postgres/002_indexes.sql":          "CREATE INDEX idx_players_team ON players (team_id);\n",
		"postgres/README.md":                "not a migration",
		"clickhouse/001_initial_schema.sql": "-- history\nCREATE DATABASE IF NOT EXISTS pitch;\n\nCREATE TABLE pitch.t (x UInt8) ENGINE = Memory;\n-- trailing comment\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestInstallDatabase(t *testing.T) {
	var pgScripts []string
	var chStatements []string
	h := New(Config{
		Postgres: &MockDatabase{ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			pgScripts = append(pgScripts, sql)
			return pgconn.CommandTag{}, nil
		}},
		ClickHouse: &MockClickHouseConn{ExecFunc: func(ctx context.Context, query string, args ...any) error {
			chStatements = append(chStatements, query)
			return nil
		}},
		Logger:        zap.NewNop(),
		MigrationsDir: writeMigrations(t),
	})

	w := httptest.NewRecorder()
	h.InstallDatabase(w, httptest.NewRequest("POST", "/api/v1/system/install", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200 (body %s)", w.Code, w.Body)
	}
	if len(pgScripts) != 2 || !strings.HasPrefix(pgScripts[1], "CREATE INDEX") {
		t.Errorf("postgres scripts = %q, want both migrations in file order", pgScripts)
	}

	var body struct {
		Applied map[string][]string `json:"applied"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if want := []string{"001_initial_schema.sql", "002_indexes.sql"}; !reflect.DeepEqual(body.Applied["postgres"], want) {
		t.Errorf("applied postgres = %v, want %v", body.Applied["postgres"], want)
	}
	want := []string{
		"CREATE DATABASE IF NOT EXISTS pitch",
		"CREATE TABLE pitch.t (x UInt8) ENGINE = Memory",
	}
	if !reflect.DeepEqual(chStatements, want) {
		t.Errorf("clickhouse statements = %q, want %q", chStatements, want)
	}
}

func TestInstallDatabase_Failure(t *testing.T) {
	h := New(Config{
		Postgres: &MockDatabase{ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errBoom
		}},
		ClickHouse:    &MockClickHouseConn{},
		Logger:        zap.NewNop(),
		MigrationsDir: writeMigrations(t),
	})

	w := httptest.NewRecorder()
	h.InstallDatabase(w, httptest.NewRequest("POST", "/api/v1/system/install", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("StatusCode = %d, want 500", w.Code)
	}
	var body struct {
		Results map[string]string `json:"results"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if body.Results["clickhouse"] != "success" || body.Results["postgres"] == "success" {
		t.Errorf("results = %v", body.Results)
	}
}

func TestInstallDatabase_MissingMigrations(t *testing.T) {
	h := New(Config{
		Postgres:      &MockDatabase{},
		ClickHouse:    &MockClickHouseConn{},
		Logger:        zap.NewNop(),
		MigrationsDir: t.TempDir(),
	})

	w := httptest.NewRecorder()
	h.InstallDatabase(w, httptest.NewRequest("POST", "/api/v1/system/install", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("StatusCode = %d, want 500", w.Code)
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		pgErr      error
		cache      Pinger
		wantStatus int
		wantChecks int
	}{
		{"AllUp", nil, &MockPinger{}, http.StatusOK, 3},
		{"InProcessCache", nil, nil, http.StatusOK, 2},
		{"PostgresDown", errBoom, nil, http.StatusServiceUnavailable, 2},
		{"RedisDown", nil, &MockPinger{Err: errBoom}, http.StatusServiceUnavailable, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(Config{
				WorkerPool: &MockEventQueue{Depth: 7},
				Postgres:   &MockDatabase{PingErr: tt.pgErr},
				ClickHouse: &MockClickHouseConn{},
				Cache:      tt.cache,
				Logger:     zap.NewNop(),
			})

			w := httptest.NewRecorder()
			h.Ready(w, httptest.NewRequest("GET", "/ready", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", w.Code, tt.wantStatus)
			}
			var body struct {
				Checks     map[string]bool `json:"checks"`
				QueueDepth int             `json:"queueDepth"`
			}
			json.NewDecoder(w.Body).Decode(&body)
			if len(body.Checks) != tt.wantChecks || body.QueueDepth != 7 {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		value      string
		wantStatus int
	}{
		{"Disabled", "", "X-Admin-Token", "secret", http.StatusForbidden},
		{"Missing", "secret", "", "", http.StatusUnauthorized},
		{"Wrong", "secret", "X-Admin-Token", "guess", http.StatusUnauthorized},
		{"Header", "secret", "X-Admin-Token", "secret", http.StatusNoContent},
		{"Bearer", "secret", "Authorization", "Bearer secret", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(Config{AdminToken: tt.configured, Logger: zap.NewNop()})
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest("POST", "/api/v1/system/install", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			h.AdminAuthMiddleware(next).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
