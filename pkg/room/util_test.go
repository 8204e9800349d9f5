package room

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"twentyone-server/internal/rng"
	"twentyone-server/pkg/model"
	"twentyone-server/pkg/playable"
	"twentyone-server/pkg/playable/twentyone"
)

type fakeRecorder struct {
	lock    sync.Mutex
	matches []*model.Match
	err     error
}

func (f *fakeRecorder) SaveMatch(_ context.Context, m *model.Match) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.err != nil {
		return f.err
	}

	f.matches = append(f.matches, m)
	return nil
}

func (f *fakeRecorder) saved() []*model.Match {
	f.lock.Lock()
	defer f.lock.Unlock()

	return append([]*model.Match(nil), f.matches...)
}

func testLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func testOptions(scoreLimit int) twentyone.Options {
	return twentyone.Options{
		ScoreLimit:    scoreLimit,
		DealerStandOn: 17,
		Rand:          rng.NewSeeded(42),
	}
}

func actionPayload(action twentyone.Action) *playable.PayloadIn {
	return &playable.PayloadIn{
		Action:  MessageAction,
		Subject: strconv.Itoa(int(action)),
		Context: "ctx-" + action.String(),
	}
}

// playToEnd makes the first legal move until the match is over
// The user always stays, so every round needs a single action at most.
func playToEnd(t *testing.T, d *Dealer) *TableState {
	t.Helper()

	for i := 0; i < 100; i++ {
		ts, err := d.State()
		require.NoError(t, err)

		switch ts.Game.State {
		case "match-over":
			return ts
		case "user-turn":
			_, err = d.Do(actionPayload(twentyone.ActionStay))
		case "done":
			_, err = d.Do(actionPayload(twentyone.ActionNextRound))
		default:
			t.Fatalf("unexpected state %s", ts.Game.State)
		}

		require.NoError(t, err)
	}

	t.Fatal("match did not finish")
	return nil
}
