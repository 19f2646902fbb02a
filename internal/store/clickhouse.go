package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/pitchconnect/analytics-api/internal/logic"
	"github.com/pitchconnect/analytics-api/internal/models"
)

// DefaultMatchHistory is how many recent appearances a snapshot carries
const DefaultMatchHistory = 60

// Matches reads per-match performance history from ClickHouse
type Matches struct {
	ch driver.Conn
}

// NewMatches wraps a ClickHouse connection
func NewMatches(ch driver.Conn) *Matches {
	return &Matches{ch: ch}
}

// Recent returns the player's last appearances up to now, most recent first
func (m *Matches) Recent(ctx context.Context, playerID string, now time.Time, limit int) ([]models.MatchPerformance, error) {
	if limit <= 0 {
		limit = DefaultMatchHistory
	}
	rows, err := m.ch.Query(ctx, `
		SELECT
			match_id,
			rating,
			goals,
			assists,
			minutes_played,
			played_at,
			stats
		FROM pitch.match_performances FINAL
		WHERE player_id = ? AND played_at <= ?
		ORDER BY played_at DESC
		LIMIT ?
	`, playerID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w: %v", logic.ErrUpstreamUnavailable, err)
	}
	defer rows.Close()

	var out []models.MatchPerformance
	for rows.Next() {
		var (
			mp                     models.MatchPerformance
			goals, assists, played uint16
			stats                  map[string]float64
		)
		if err := rows.Scan(&mp.MatchID, &mp.Rating, &goals, &assists, &played, &mp.Timestamp, &stats); err != nil {
			return nil, fmt.Errorf("scan match: %w: %v", logic.ErrUpstreamUnavailable, err)
		}
		mp.Goals = int(goals)
		mp.Assists = int(assists)
		mp.MinutesPlayed = int(played)
		if len(stats) > 0 {
			mp.Stats = stats
		}
		out = append(out, mp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load matches: %w: %v", logic.ErrUpstreamUnavailable, err)
	}
	return out, nil
}

// Record appends appearances in one batch
func (m *Matches) Record(ctx context.Context, playerID string, matches []models.MatchPerformance) error {
	batch, err := m.ch.PrepareBatch(ctx, `
		INSERT INTO pitch.match_performances (
			player_id, match_id, played_at, rating, goals, assists, minutes_played, stats
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}
	for _, mp := range matches {
		stats := mp.Stats
		if stats == nil {
			stats = map[string]float64{}
		}
		if err := batch.Append(
			playerID,
			mp.MatchID,
			mp.Timestamp,
			mp.Rating,
			uint16(mp.Goals),
			uint16(mp.Assists),
			uint16(mp.MinutesPlayed),
			stats,
		); err != nil {
			return fmt.Errorf("append match %s: %w", mp.MatchID, err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}
