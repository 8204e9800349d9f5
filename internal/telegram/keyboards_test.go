package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"twentyone-server/pkg/playable/twentyone"
)

func TestActionKeyboard(t *testing.T) {
	a := assert.New(t)

	_, ok := ActionKeyboard(nil)
	a.False(ok)

	kb, ok := ActionKeyboard([]twentyone.Action{twentyone.ActionHit, twentyone.ActionStay})
	a.True(ok)
	a.Len(kb.InlineKeyboard, 1)
	a.Len(kb.InlineKeyboard[0], 2)
	a.Equal("👊 Hit", kb.InlineKeyboard[0][0].Text)
	a.Equal("action:1", *kb.InlineKeyboard[0][0].CallbackData)
	a.Equal("action:2", *kb.InlineKeyboard[0][1].CallbackData)
}

func Test_actionFromCallback(t *testing.T) {
	a := assert.New(t)

	action, err := actionFromCallback("action:4")
	a.NoError(err)
	a.Equal(twentyone.ActionPlayAgain, action)

	_, err = actionFromCallback("action:99")
	a.EqualError(err, "invalid action: 99")

	_, err = actionFromCallback("hit")
	a.EqualError(err, "invalid callback: hit")
}
