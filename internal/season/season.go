package season

import (
	"fmt"

	"github.com/aatrey56/fpl-sim/internal/apperr"
	"github.com/aatrey56/fpl-sim/internal/points"
	"github.com/aatrey56/fpl-sim/internal/squad"
)

type State string

const (
	Active   State = "active"
	Complete State = "complete"
)

type Verdict string

const (
	Undecided Verdict = ""
	Win       Verdict = "win"
	Lose      Verdict = "lose"
	Tie       Verdict = "tie"
)

// Season tracks round progress and cumulative totals for the user and the
// opponent. It only moves forward.
type Season struct {
	rounds        int
	round         int
	userTotal     int
	opponentTotal int
	history       []RoundResult
}

// RoundResult is what one successful Advance produced.
type RoundResult struct {
	Round              int            `json:"round"`
	User               *points.Result `json:"user"`
	Opponent           *points.Result `json:"opponent"`
	UserCumulative     int            `json:"user_cumulative"`
	OpponentCumulative int            `json:"opponent_cumulative"`
	Complete           bool           `json:"complete"`
	Verdict            Verdict        `json:"verdict,omitempty"`
}

func New(rounds int) *Season {
	return &Season{rounds: rounds}
}

func (s *Season) Round() int         { return s.round }
func (s *Season) Rounds() int        { return s.rounds }
func (s *Season) UserTotal() int     { return s.userTotal }
func (s *Season) OpponentTotal() int { return s.opponentTotal }

func (s *Season) State() State {
	if s.round >= s.rounds {
		return Complete
	}
	return Active
}

// Verdict compares cumulative totals once the season is complete.
func (s *Season) Verdict() Verdict {
	if s.State() != Complete {
		return Undecided
	}
	switch {
	case s.userTotal > s.opponentTotal:
		return Win
	case s.userTotal < s.opponentTotal:
		return Lose
	default:
		return Tie
	}
}

// History returns every round played so far, oldest first.
func (s *Season) History() []RoundResult {
	out := make([]RoundResult, len(s.history))
	copy(out, s.history)
	return out
}

// Advance plays one round. The user roster must be full; penalty events are
// drawn for user athletes only. Scores are written back onto both rosters.
// On error nothing changes.
func (s *Season) Advance(rng points.Rand, user, opponent *squad.Roster) (RoundResult, error) {
	if s.State() == Complete {
		return RoundResult{}, apperr.New(apperr.CodeSeasonComplete,
			fmt.Sprintf("season finished after %d rounds", s.rounds))
	}
	if !user.Full() {
		return RoundResult{}, apperr.New(apperr.CodeIncompleteRoster,
			fmt.Sprintf("need a full squad (%d players) to play a round, have %d", user.Quotas().Total(), user.Len()))
	}

	next := s.round + 1
	userRes := points.BuildResult(user.Owner, next, rng, user.Members(), true)
	oppRes := points.BuildResult(opponent.Owner, next, rng, opponent.Members(), false)

	for i, p := range userRes.Players {
		user.SetPoints(i, p.Points)
	}
	for i, p := range oppRes.Players {
		opponent.SetPoints(i, p.Points)
	}

	s.userTotal += userRes.TotalPoints
	s.opponentTotal += oppRes.TotalPoints
	s.round = next

	res := RoundResult{
		Round:              next,
		User:               userRes,
		Opponent:           oppRes,
		UserCumulative:     s.userTotal,
		OpponentCumulative: s.opponentTotal,
		Complete:           s.State() == Complete,
		Verdict:            s.Verdict(),
	}
	s.history = append(s.history, res)
	return res, nil
}
