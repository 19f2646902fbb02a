// Package store assembles player snapshots from the operational databases:
// master data in PostgreSQL and match history in ClickHouse.
package store

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pitchconnect/analytics-api/internal/logic"
	"github.com/pitchconnect/analytics-api/internal/models"
)

const (
	trainingLookback = 28 * 24 * time.Hour
	fixtureLookahead = 5
)

// Config holds the snapshot store's collaborators
type Config struct {
	Postgres     PgPool
	ClickHouse   MatchReader
	Logger       *zap.Logger
	MatchHistory int
	Now          func() time.Time
}

// MatchReader is the match history source
type MatchReader interface {
	Recent(ctx context.Context, playerID string, now time.Time, limit int) ([]models.MatchPerformance, error)
}

// SnapshotStore implements logic.SnapshotStore over both databases
type SnapshotStore struct {
	pg      *Postgres
	matches MatchReader
	logger  *zap.SugaredLogger
	history int
	now     func() time.Time
}

var _ logic.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore wires the store
func NewSnapshotStore(cfg Config) *SnapshotStore {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	history := cfg.MatchHistory
	if history <= 0 {
		history = DefaultMatchHistory
	}
	return &SnapshotStore{
		pg:      NewPostgres(cfg.Postgres),
		matches: cfg.ClickHouse,
		logger:  logger.Sugar(),
		history: history,
		now:     now,
	}
}

// GetPlayerSnapshot resolves the player, then loads the history tables in parallel
func (s *SnapshotStore) GetPlayerSnapshot(ctx context.Context, playerID string) (*models.PlayerSnapshot, error) {
	now := s.now()
	snap, err := s.pg.Player(ctx, playerID, now)
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		matches, err := s.matches.Recent(ctx, playerID, now, s.history)
		if err != nil {
			return err
		}
		snap.Matches = matches
		return nil
	})

	g.Go(func() error {
		injuries, err := s.pg.Injuries(ctx, playerID)
		if err != nil {
			return err
		}
		snap.Injuries = injuries
		return nil
	})

	g.Go(func() error {
		training, err := s.pg.Training(ctx, playerID, now.Add(-trainingLookback))
		if err != nil {
			return err
		}
		snap.Training = training
		return nil
	})

	if snap.TeamID != "" {
		g.Go(func() error {
			fixtures, err := s.pg.Fixtures(ctx, snap.TeamID, now, fixtureLookahead)
			if err != nil {
				return err
			}
			snap.UpcomingFixtures = fixtures
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Errorw("Failed to assemble snapshot", "player", playerID, "error", err)
		return nil, err
	}
	return snap, nil
}

// GetTeamRoster lists a team's active players
func (s *SnapshotStore) GetTeamRoster(ctx context.Context, teamID string) ([]string, error) {
	return s.pg.Roster(ctx, teamID)
}
