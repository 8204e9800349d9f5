package model

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
	"twentyone-server/pkg/db"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrDuplicateMatch happens if a match is recorded twice
var ErrDuplicateMatch = errors.New("match has already been recorded")

const matchColumns = `
matches.id,
matches.table_uuid,
matches.player_name,
matches.winner,
matches.user_score,
matches.dealer_score,
matches.rounds,
matches.outcomes,
matches.log,
matches.created`

// Match is a record in the `matches` table
type Match struct {
	ID          string          `json:"id"`
	TableUUID   string          `json:"tableUuid"`
	PlayerName  string          `json:"playerName"`
	Winner      string          `json:"winner"`
	UserScore   int             `json:"userScore"`
	DealerScore int             `json:"dealerScore"`
	Rounds      int             `json:"rounds"`
	Outcomes    []string        `json:"outcomes"`
	Log         json.RawMessage `json:"log,omitempty"`
	Created     time.Time       `json:"created"`
}

// MatchStore persists finished matches
type MatchStore struct {
	db *sql.DB
}

// NewMatchStore returns a store backed by the database handle
func NewMatchStore(dbh *sql.DB) *MatchStore {
	return &MatchStore{db: dbh}
}

func getMatchByRow(row db.Scanner) (*Match, error) {
	var m Match
	var log []byte
	if err := row.Scan(&m.ID, &m.TableUUID, &m.PlayerName, &m.Winner, &m.UserScore, &m.DealerScore, &m.Rounds, pq.Array(&m.Outcomes), &log, &m.Created); err != nil {
		return nil, err
	}

	if len(log) > 0 {
		m.Log = log
	}

	return &m, nil
}

// SaveMatch inserts the match and sets its created time
func (s *MatchStore) SaveMatch(ctx context.Context, m *Match) error {
	const query = `
INSERT INTO matches (id, table_uuid, player_name, winner, user_score, dealer_score, rounds, outcomes, log)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING created`

	var log interface{}
	if len(m.Log) > 0 {
		log = []byte(m.Log)
	}

	outcomes := m.Outcomes
	if outcomes == nil {
		outcomes = []string{}
	}

	row := s.db.QueryRowContext(ctx, query, m.ID, m.TableUUID, m.PlayerName, m.Winner, m.UserScore, m.DealerScore, m.Rounds, pq.Array(outcomes), log)
	if err := row.Scan(&m.Created); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
			return ErrDuplicateMatch
		}

		return err
	}

	return nil
}

// GetMatchByID returns a single match
func (s *MatchStore) GetMatchByID(ctx context.Context, id string) (*Match, error) {
	const query = `
SELECT ` + matchColumns + `
FROM matches
WHERE id = $1`

	return getMatchByRow(s.db.QueryRowContext(ctx, query, id))
}

// GetMatches returns the most recent matches first
func (s *MatchStore) GetMatches(ctx context.Context, offset int64, limit int) ([]*Match, error) {
	const query = `
SELECT ` + matchColumns + `
FROM matches
ORDER BY created DESC, id
OFFSET $1
LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*Match, 0)
	for rows.Next() {
		m, err := getMatchByRow(rows)
		if err != nil {
			return nil, err
		}

		matches = append(matches, m)
	}

	return matches, rows.Err()
}
