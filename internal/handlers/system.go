package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// schemaTarget is one database the installer migrates
type schemaTarget struct {
	name  string
	dir   string
	apply func(ctx context.Context, script string) error
}

// InstallDatabase applies every migration under the postgres and clickhouse
// directories in file name order
// @Summary Install Database Schema
// @Description Executes the SQL migrations for PostgreSQL and ClickHouse
// @Tags System
// @Produce json
// @Security AdminToken
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]interface{}
// @Router /system/install [post]
func (h *Handler) InstallDatabase(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	targets := []schemaTarget{
		{name: "postgres", dir: filepath.Join(h.migrationsDir, "postgres"), apply: h.applyPostgres},
		{name: "clickhouse", dir: filepath.Join(h.migrationsDir, "clickhouse"), apply: h.applyClickHouse},
	}

	results := make(map[string]string, len(targets))
	applied := make(map[string][]string, len(targets))
	failed := false
	for _, target := range targets {
		files, err := h.migrate(r.Context(), target)
		applied[target.name] = files
		if err != nil {
			results[target.name] = "failed: " + err.Error()
			failed = true
			continue
		}
		results[target.name] = "success"
	}

	status := http.StatusOK
	if failed {
		status = http.StatusInternalServerError
	}
	h.jsonResponse(w, status, map[string]interface{}{
		"status":      "completed",
		"results":     results,
		"applied":     applied,
		"error":       failed,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

// migrate runs the target's .sql files in order and stops at the first failure.
// It returns the files applied before that point.
func (h *Handler) migrate(ctx context.Context, target schemaTarget) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(target.dir, "*.sql"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no migrations in %s", target.dir)
	}
	sort.Strings(paths)

	applied := make([]string, 0, len(paths))
	for _, path := range paths {
		script, err := os.ReadFile(path)
		if err != nil {
			h.logger.Errorw("failed to read migration", "db", target.name, "path", path, "error", err)
			return applied, err
		}
		if err := target.apply(ctx, string(script)); err != nil {
			h.logger.Errorw("migration failed", "db", target.name, "file", filepath.Base(path), "error", err)
			return applied, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		applied = append(applied, filepath.Base(path))
	}
	h.logger.Infow("migrations applied", "db", target.name, "files", len(applied))
	return applied, nil
}

// applyPostgres sends the whole script in one round trip
func (h *Handler) applyPostgres(ctx context.Context, script string) error {
	_, err := h.pg.Exec(ctx, script)
	return err
}

// applyClickHouse executes statement by statement; the native protocol
// rejects multi-statement queries
func (h *Handler) applyClickHouse(ctx context.Context, script string) error {
	for _, stmt := range splitStatements(script) {
		if err := h.ch.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%s...: %w", stmt[:min(len(stmt), 50)], err)
		}
	}
	return nil
}

// splitStatements splits a script on ';' dropping blanks and comment-only chunks
func splitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		var lines []string
		for _, line := range strings.Split(stmt, "\n") {
			if t := strings.TrimSpace(line); t != "" && !strings.HasPrefix(t, "--") {
				lines = append(lines, line)
			}
		}
		if trimmed := strings.TrimSpace(strings.Join(lines, "\n")); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
