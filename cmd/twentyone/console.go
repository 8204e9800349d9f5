package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"twentyone-server/pkg/playable/twentyone"
)

const clearScreen = "\033[H\033[2J"

// console plays a match over a line-oriented terminal
type console struct {
	in      *bufio.Reader
	out     io.Writer
	clear   bool
	logger  logrus.FieldLogger
	options twentyone.Options
}

func newConsole(in io.Reader, out io.Writer, clear bool, logger logrus.FieldLogger, options twentyone.Options) *console {
	return &console{
		in:      bufio.NewReader(in),
		out:     out,
		clear:   clear,
		logger:  logger,
		options: options,
	}
}

func (c *console) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}

// readLine returns the next line without its line ending
func (c *console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// run plays until the user declines another match or input ends
func (c *console) run() error {
	c.printf("Welcome to Twenty-One!\n\n")

	game, err := c.newGame()
	if err != nil {
		return err
	}

	c.printf("\nHouse rules:\n")
	for _, rule := range twentyone.HouseRules(c.options) {
		c.printf("  * %s\n", rule)
	}

	for {
		c.showRound(game)

		for game.State() == string(twentyone.RoundStateUserTurn) {
			action, err := c.promptAction("(h)it or (s)tay? ", twentyone.ActionHit, twentyone.ActionStay)
			if err != nil {
				return err
			}

			if err := game.Apply(action); err != nil {
				return err
			}

			c.printLog(game)
		}

		if game.IsMatchOver() {
			action, err := c.promptAction("Play again? (Y/N) ", twentyone.ActionPlayAgain, twentyone.ActionQuit)
			if err != nil {
				return err
			}

			if err := game.Apply(action); err != nil {
				return err
			}

			if action == twentyone.ActionQuit {
				c.printf("%s\n", twentyone.GoodbyeMessage)
				return nil
			}

			continue
		}

		if _, err := c.readLine("Press ENTER to deal the next round..."); err != nil {
			return err
		}

		if err := game.NextRound(); err != nil {
			return err
		}
	}
}

func (c *console) newGame() (*twentyone.Game, error) {
	for {
		name, err := c.readLine("What's your name? ")
		if err != nil {
			return nil, err
		}

		game, err := twentyone.NewGame(c.logger, name, c.options)
		if errors.Is(err, twentyone.ErrReservedName) {
			c.printf("%s\n", err)
			continue
		}

		if err != nil {
			return nil, err
		}

		c.printf("Hello, %s!\n", game.User().Name)
		return game, nil
	}
}

// promptAction asks until the answer is one of the allowed actions
func (c *console) promptAction(prompt string, allowed ...twentyone.Action) (twentyone.Action, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}

		action, err := twentyone.ActionFromString(line)
		if err == nil {
			for _, a := range allowed {
				if a == action {
					return action, nil
				}
			}
		}

		c.printf("Sorry, I didn't understand that.\n")
	}
}

func (c *console) showRound(game *twentyone.Game) {
	if c.clear {
		c.printf("%s", clearScreen)
	}

	user, dealer := scoresBeforeRound(game)
	c.printf("\n%s\n", twentyone.RoundBanner(game.RoundNumber(), user, dealer))
	c.printLog(game)
}

// scoresBeforeRound leaves out the current round, which is already settled when the deal ends it
func scoresBeforeRound(game *twentyone.Game) (*twentyone.Participant, *twentyone.Participant) {
	user := &twentyone.Participant{Name: game.User().Name}
	dealer := &twentyone.Participant{Name: game.Dealer().Name}
	for _, result := range game.Results() {
		if result.Number == game.RoundNumber() {
			continue
		}

		switch result.Outcome {
		case twentyone.OutcomeUserWin:
			user.Score++
		case twentyone.OutcomeDealerWin:
			dealer.Score++
		}
	}

	return user, dealer
}

// printLog prints everything the game has narrated since the last call
func (c *console) printLog(game *twentyone.Game) {
	for {
		select {
		case messages := <-game.LogChan():
			for _, msg := range messages {
				c.printf("%s\n", msg.Message)
			}
		default:
			return
		}
	}
}
