package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"twentyone-server/pkg/playable/twentyone"
)

const callbackActionPrefix = "action:"

var actionLabels = map[twentyone.Action]string{
	twentyone.ActionHit:       "👊 Hit",
	twentyone.ActionStay:      "✋ Stay",
	twentyone.ActionNextRound: "▶️ Next Round",
	twentyone.ActionPlayAgain: "🔄 Play Again",
	twentyone.ActionQuit:      "🚪 Quit",
}

// ActionKeyboard returns one button per action
func ActionKeyboard(actions []twentyone.Action) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(actions) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	row := make([]tgbotapi.InlineKeyboardButton, 0, len(actions))
	for _, action := range actions {
		label, ok := actionLabels[action]
		if !ok {
			label = action.String()
		}

		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, callbackData(action)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(row), true
}

func callbackData(action twentyone.Action) string {
	return callbackActionPrefix + strconv.Itoa(int(action))
}

// actionFromCallback returns the action encoded in the callback data
func actionFromCallback(data string) (twentyone.Action, error) {
	if !strings.HasPrefix(data, callbackActionPrefix) {
		return 0, fmt.Errorf("invalid callback: %s", data)
	}

	return twentyone.ActionFromString(strings.TrimPrefix(data, callbackActionPrefix))
}
