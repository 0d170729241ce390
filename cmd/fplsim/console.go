package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aatrey56/fpl-sim/internal/apperr"
	"github.com/aatrey56/fpl-sim/internal/game"
	"github.com/aatrey56/fpl-sim/internal/model"
	"github.com/aatrey56/fpl-sim/internal/points"
	"github.com/aatrey56/fpl-sim/internal/season"
	"github.com/aatrey56/fpl-sim/internal/squad"
)

const menu = `
1. Buy Player
2. Sell Player
3. Simulate Gameweek
4. Autofill Squad
5. Clear Squad
6. Show Squad
7. Show Bot Squad
8. Exit
Choose an option: `

// console is the text menu over a session. It owns no game state.
type console struct {
	in   *bufio.Scanner
	out  io.Writer
	sess *game.Session
}

func newConsole(in io.Reader, out io.Writer, sess *game.Session) *console {
	return &console{in: bufio.NewScanner(in), out: out, sess: sess}
}

// run loops until the user exits or input ends.
func (c *console) run() {
	if d := c.sess.OpponentDraft; d.Full {
		c.printf("Bot has drafted a squad!\n")
	} else {
		c.printf("Bot could not autofill squad with %d players within the budget!\n", model.SquadSize)
	}

	for {
		st := c.sess.Status()
		c.printf("\nBudget: $%.1f\nGameweek: %d/%d\nYour Total Score: %d points.\nBot's Total Score: %d points.\n",
			st.Budget, st.Round, st.Rounds, st.UserTotal, st.OpponentTotal)
		c.printf("%s", menu)

		line, ok := c.readLine()
		if !ok {
			return
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			c.printf("Invalid input! Please enter a number.\n")
			continue
		}

		switch choice {
		case 1:
			c.buy()
		case 2:
			c.sell()
		case 3:
			c.simulate()
		case 4:
			c.autofill()
		case 5:
			c.clear()
		case 6:
			c.showSquad("Your", c.sess.Squad())
		case 7:
			c.showSquad("Bot's", c.sess.OpponentSquad())
		case 8:
			c.printf("Exiting game...\n")
			return
		default:
			c.printf("Invalid choice!\n")
		}
	}
}

func (c *console) buy() {
	c.printf("Enter position (Attacker/Midfielder/Defender/Goalkeeper): ")
	posText, ok := c.readLine()
	if !ok {
		return
	}
	pos, err := model.ParsePosition(posText)
	if err != nil {
		c.printf("Unknown position %q!\n", posText)
		return
	}
	c.printf("Enter club name: ")
	club, ok := c.readLine()
	if !ok {
		return
	}

	c.printf("\nAvailable %ss from %s:\n", pos, club)
	for _, a := range c.sess.Available(pos, club) {
		c.printf("%s - $%.1f\n", a.Name, a.Price)
	}

	c.printf("Enter player name to buy: ")
	name, ok := c.readLine()
	if !ok {
		return
	}
	a, err := c.sess.Buy(name)
	if err != nil {
		c.reportError(err)
		return
	}
	c.printf("%s added to your squad!\n", a.Name)
}

func (c *console) sell() {
	members := c.sess.Squad()
	if len(members) == 0 {
		c.printf("Your squad is empty!\n")
		return
	}
	c.showSquad("Your", members)
	c.printf("Enter the number of the player to sell: ")
	line, ok := c.readLine()
	if !ok {
		return
	}
	idx, err := strconv.Atoi(line)
	if err != nil {
		c.printf("Invalid input! Please enter an integer.\n")
		return
	}
	a, err := c.sess.Sell(idx)
	if err != nil {
		c.reportError(err)
		return
	}
	c.printf("%s sold!\n", a.Name)
}

func (c *console) simulate() {
	res, err := c.sess.SimulateRound()
	if err != nil {
		c.reportError(err)
		return
	}

	c.printf("\nGameweek %d Simulation:\n", res.Round)
	for _, p := range res.User.Players {
		switch p.Event {
		case points.RedCard:
			c.printf("%s received a RED CARD! -3 points.\n", p.Name)
		case points.YellowCard:
			c.printf("%s received a YELLOW CARD! -1 point.\n", p.Name)
		case points.OwnGoal:
			c.printf("%s Own Goal! -4 points.\n", p.Name)
		}
		c.printf("%s scored %d points!\n", p.Name, p.Points)
	}
	c.printf("\nYour Total Gameweek Points: %d\n", res.User.TotalPoints)
	c.printf("Bot's Total Gameweek Points: %d\n", res.Opponent.TotalPoints)
	c.printf("Your Cumulative Score: %d points.\n", res.UserCumulative)
	c.printf("Bot's Cumulative Score: %d points.\n", res.OpponentCumulative)

	if !res.Complete {
		return
	}
	c.printf("\n\n%d weeks completed! Your final score: %d points.\n", res.Round, res.UserCumulative)
	c.printf("Bot's final score: %d points.\n", res.OpponentCumulative)
	switch res.Verdict {
	case season.Win:
		c.printf("Congratulations! You defeated the bot!\n")
	case season.Lose:
		c.printf("The bot defeated you! Try again next time.\n")
	default:
		c.printf("It's a tie!\n")
	}
}

func (c *console) autofill() {
	res := c.sess.Autofill()
	switch {
	case res.AlreadyFull:
		c.printf("Your squad is already full!\n")
	case !res.Full:
		c.printf("User could not autofill squad with %d players within the budget! Please clear squad and redraft\n", model.SquadSize)
	default:
		c.printf("User has drafted a squad!\n")
	}
}

func (c *console) clear() {
	res := c.sess.Clear()
	if res.AlreadyEmpty {
		c.printf("Your squad is already empty!\n")
		return
	}
	c.printf("Squad cleared! Your budget has been refunded.\n")
}

func (c *console) showSquad(owner string, members []squad.Entry) {
	if len(members) == 0 {
		c.printf("%s squad is empty!\n", owner)
		return
	}
	c.printf("\n%s current squad:\n", owner)
	for _, m := range members {
		c.printf("%d. %s (%s) - $%.1f\n", m.Index, m.Name, m.Position, m.Price)
	}
}

func (c *console) reportError(err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.printf("Player not found!\n")
	case errors.Is(err, apperr.ErrInsufficientBudget):
		c.printf("Not enough budget!\n")
	case errors.Is(err, apperr.ErrInvalidIndex):
		c.printf("Invalid choice!\n")
	case errors.Is(err, apperr.ErrIncompleteRoster):
		c.printf("You need a full squad (%d players) to start a gameweek!\n", model.SquadSize)
	case errors.Is(err, apperr.ErrSeasonComplete):
		c.printf("The season is over!\n")
	default:
		// Position limit and anything else carry their own message.
		c.printf("%s!\n", err)
	}
}

func (c *console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
