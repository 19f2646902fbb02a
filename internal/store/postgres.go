package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pitchconnect/analytics-api/internal/logic"
	"github.com/pitchconnect/analytics-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres reads player master data: profile, contract, injuries, training,
// fixtures and rosters
type Postgres struct {
	pg PgPool
}

// NewPostgres wraps a pool
func NewPostgres(pg PgPool) *Postgres {
	return &Postgres{pg: pg}
}

// upstream marks a database failure as retryable
func upstream(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, logic.ErrUpstreamUnavailable, err)
}

// Player loads the profile and contract of a player. Match history, injuries
// and training are filled by the caller.
func (p *Postgres) Player(ctx context.Context, playerID string, now time.Time) (*models.PlayerSnapshot, error) {
	s := &models.PlayerSnapshot{ID: playerID}
	var (
		sport, tier                    string
		dob                            *time.Time
		teamID                         *string
		contractStart, contractEnd     *time.Time
		lastValue, sleepHours          float64
		seasonMinutes, previousMinutes int
		careerApps                     int
	)
	err := p.pg.QueryRow(ctx, `
		SELECT p.name, p.sport, p.position, p.date_of_birth, p.team_id,
		       COALESCE(p.tier, t.tier, 'AMATEUR'),
		       COALESCE(p.last_market_value, 0)::float8,
		       COALESCE(p.season_minutes, 0), COALESCE(p.previous_season_minutes, 0),
		       COALESCE(p.career_appearances, 0),
		       COALESCE(p.avg_sleep_hours, 0)::float8,
		       c.start_date, c.end_date
		FROM players p
		LEFT JOIN teams t ON t.id = p.team_id
		LEFT JOIN LATERAL (
			SELECT start_date, end_date FROM contracts
			WHERE player_id = p.id AND end_date > $2
			ORDER BY end_date DESC LIMIT 1
		) c ON TRUE
		WHERE p.id = $1
	`, playerID, now).Scan(&s.Name, &sport, &s.Position, &dob, &teamID, &tier,
		&lastValue, &seasonMinutes, &previousMinutes, &careerApps, &sleepHours,
		&contractStart, &contractEnd)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", logic.ErrPlayerNotFound, playerID)
	}
	if err != nil {
		return nil, upstream("load player", err)
	}

	s.Sport = models.Sport(sport)
	s.Tier = models.CompetitiveTier(tier)
	if teamID != nil {
		s.TeamID = *teamID
	}
	if dob != nil {
		s.Age = ageAt(*dob, now)
	}
	s.LastMarketValue = lastValue
	s.SeasonMinutes = seasonMinutes
	s.PreviousSeasonMinutes = previousMinutes
	s.CareerAppearances = careerApps
	s.AvgSleepHours = sleepHours
	if contractEnd != nil {
		c := &models.Contract{YearsRemaining: contractEnd.Sub(now).Hours() / (24 * 365.25)}
		if contractStart != nil {
			c.StartDate = *contractStart
		}
		s.Contract = c
	}
	return s, nil
}

// Injuries returns the player's injury history, newest first
func (p *Postgres) Injuries(ctx context.Context, playerID string) ([]models.InjuryRecord, error) {
	rows, err := p.pg.Query(ctx, `
		SELECT injury_type, body_part, severity, date_from, date_to
		FROM injuries
		WHERE player_id = $1
		ORDER BY date_from DESC
	`, playerID)
	if err != nil {
		return nil, upstream("load injuries", err)
	}
	defer rows.Close()

	var out []models.InjuryRecord
	for rows.Next() {
		var r models.InjuryRecord
		if err := rows.Scan(&r.Type, &r.BodyPart, &r.Severity, &r.DateFrom, &r.DateTo); err != nil {
			return nil, upstream("scan injury", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, upstream("load injuries", err)
	}
	return out, nil
}

// Training returns sessions since the given time, newest first
func (p *Postgres) Training(ctx context.Context, playerID string, since time.Time) ([]models.TrainingSession, error) {
	rows, err := p.pg.Query(ctx, `
		SELECT session_date, duration_minutes, intensity, attended
		FROM training_sessions
		WHERE player_id = $1 AND session_date >= $2
		ORDER BY session_date DESC
	`, playerID, since)
	if err != nil {
		return nil, upstream("load training", err)
	}
	defer rows.Close()

	var out []models.TrainingSession
	for rows.Next() {
		var (
			t         models.TrainingSession
			intensity string
		)
		if err := rows.Scan(&t.Date, &t.DurationMinutes, &intensity, &t.Attended); err != nil {
			return nil, upstream("scan training", err)
		}
		t.Intensity = models.TrainingIntensity(intensity)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, upstream("load training", err)
	}
	return out, nil
}

// Fixtures returns the team's next fixtures after now, soonest first
func (p *Postgres) Fixtures(ctx context.Context, teamID string, now time.Time, limit int) ([]models.Fixture, error) {
	rows, err := p.pg.Query(ctx, `
		SELECT kickoff, COALESCE(opponent_rating, 0)::float8
		FROM fixtures
		WHERE team_id = $1 AND kickoff > $2
		ORDER BY kickoff
		LIMIT $3
	`, teamID, now, limit)
	if err != nil {
		return nil, upstream("load fixtures", err)
	}
	defer rows.Close()

	var out []models.Fixture
	for rows.Next() {
		var f models.Fixture
		if err := rows.Scan(&f.Date, &f.OpponentRating); err != nil {
			return nil, upstream("scan fixture", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, upstream("load fixtures", err)
	}
	return out, nil
}

// Roster lists the active player ids of a team
func (p *Postgres) Roster(ctx context.Context, teamID string) ([]string, error) {
	var exists bool
	err := p.pg.QueryRow(ctx, `SELECT TRUE FROM teams WHERE id = $1`, teamID).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", logic.ErrTeamNotFound, teamID)
	}
	if err != nil {
		return nil, upstream("load team", err)
	}

	rows, err := p.pg.Query(ctx, `
		SELECT id FROM players
		WHERE team_id = $1 AND active
		ORDER BY id
	`, teamID)
	if err != nil {
		return nil, upstream("load roster", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, upstream("scan roster", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, upstream("load roster", err)
	}
	return ids, nil
}

// ageAt returns completed years between dob and now
func ageAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
