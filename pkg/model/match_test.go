package model

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"twentyone-server/pkg/db"
)

var cbg = context.Background()

// testStore connects to the database in TWENTYONE_PG_DSN
// Tests are skipped when it isn't set.
func testStore(t *testing.T) *MatchStore {
	t.Helper()

	dsn := os.Getenv("TWENTYONE_PG_DSN")
	if dsn == "" {
		t.Skip("TWENTYONE_PG_DSN is not set")
	}

	dbh, err := db.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbh.Close() })
	require.NoError(t, db.Migrate(dbh, "../../sql"))

	return NewMatchStore(dbh)
}

func TestMatchStore_SaveMatch(t *testing.T) {
	a := assert.New(t)
	s := testStore(t)

	m := &Match{
		ID:          uuid.New().String(),
		TableUUID:   uuid.New().String(),
		PlayerName:  "Ann",
		Winner:      "Ann",
		UserScore:   5,
		DealerScore: 2,
		Rounds:      8,
		Outcomes:    []string{"user-win", "tie", "dealer-win"},
		Log:         json.RawMessage(`[{"number":1}]`),
	}

	a.NoError(s.SaveMatch(cbg, m))
	a.False(m.Created.IsZero())
	a.Equal(ErrDuplicateMatch, s.SaveMatch(cbg, m))

	m2, err := s.GetMatchByID(cbg, m.ID)
	a.NoError(err)
	a.Equal(m.PlayerName, m2.PlayerName)
	a.Equal(m.Outcomes, m2.Outcomes)
	a.JSONEq(string(m.Log), string(m2.Log))

	_, err = s.GetMatchByID(cbg, uuid.New().String())
	a.Equal(sql.ErrNoRows, err)

	matches, err := s.GetMatches(cbg, 0, 100)
	a.NoError(err)
	a.NotEmpty(matches)
}
