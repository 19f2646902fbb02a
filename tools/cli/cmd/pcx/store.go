package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pitchconnect/analytics-api/internal/logic"
	"github.com/pitchconnect/analytics-api/internal/models"
)

// fileStore serves snapshots read from JSON or YAML files
type fileStore struct {
	players map[string]*models.PlayerSnapshot
	teams   map[string][]string
}

var _ logic.SnapshotStore = (*fileStore)(nil)

// loadFiles reads every file; each holds one snapshot or a list of them.
// A later file replaces an earlier snapshot with the same id.
func loadFiles(paths []string) (*fileStore, error) {
	fs := &fileStore{
		players: make(map[string]*models.PlayerSnapshot),
		teams:   make(map[string][]string),
	}
	for _, path := range paths {
		snaps, err := readSnapshots(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for _, s := range snaps {
			if s.ID == "" {
				return nil, fmt.Errorf("%s: snapshot without id", path)
			}
			fs.players[s.ID] = s
		}
	}
	for id, s := range fs.players {
		if s.TeamID != "" {
			fs.teams[s.TeamID] = append(fs.teams[s.TeamID], id)
		}
	}
	for _, ids := range fs.teams {
		sort.Strings(ids)
	}
	return fs, nil
}

func readSnapshots(path string) ([]*models.PlayerSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var list []*models.PlayerSnapshot
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return nil, err
			}
			return list, nil
		}
		var one models.PlayerSnapshot
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, err
		}
		return []*models.PlayerSnapshot{&one}, nil

	case ".yaml", ".yml":
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		if len(doc.Content) == 0 {
			return nil, nil
		}
		root := doc.Content[0]
		if root.Kind == yaml.SequenceNode {
			var list []*models.PlayerSnapshot
			if err := root.Decode(&list); err != nil {
				return nil, err
			}
			return list, nil
		}
		var one models.PlayerSnapshot
		if err := root.Decode(&one); err != nil {
			return nil, err
		}
		return []*models.PlayerSnapshot{&one}, nil
	}
	return nil, fmt.Errorf("unsupported snapshot format %q (use .json, .yaml or .yml)", filepath.Ext(path))
}

func (f *fileStore) GetPlayerSnapshot(ctx context.Context, playerID string) (*models.PlayerSnapshot, error) {
	s, ok := f.players[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", logic.ErrPlayerNotFound, playerID)
	}
	return s, nil
}

func (f *fileStore) GetTeamRoster(ctx context.Context, teamID string) ([]string, error) {
	ids, ok := f.teams[teamID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", logic.ErrTeamNotFound, teamID)
	}
	return append([]string(nil), ids...), nil
}

// only returns the id of the single loaded player
func (f *fileStore) only() (string, bool) {
	if len(f.players) != 1 {
		return "", false
	}
	for id := range f.players {
		return id, true
	}
	return "", false
}
