package points

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/aatrey56/fpl-sim/internal/model"
)

// Rand is the random source used for scoring. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type Event string

const (
	NoEvent    Event = ""
	RedCard    Event = "red_card"
	YellowCard Event = "yellow_card"
	OwnGoal    Event = "own_goal"
)

// Penalty is the points deducted for an event.
func (e Event) Penalty() int {
	switch e {
	case RedCard:
		return 3
	case YellowCard:
		return 1
	case OwnGoal:
		return 4
	default:
		return 0
	}
}

// EventFor maps a percentage draw in [0,100) to at most one event.
func EventFor(roll int) Event {
	switch {
	case roll < 4:
		return RedCard
	case roll < 10:
		return YellowCard
	case roll > 50 && roll < 53:
		return OwnGoal
	default:
		return NoEvent
	}
}

// Bonus is the fixed price-derived part of a score: floor(price / 3).
func Bonus(price float64) int {
	return int(price / 3)
}

type PlayerPoints struct {
	Name     string         `json:"name"`
	Position model.Position `json:"position"`
	Base     int            `json:"base"`
	Bonus    int            `json:"bonus"`
	Event    Event          `json:"event,omitempty"`
	Points   int            `json:"points"`
}

type Result struct {
	Owner          string         `json:"owner"`
	Round          int            `json:"round"`
	GeneratedAtUTC string         `json:"generated_at_utc"`
	Players        []PlayerPoints `json:"players"`
	TotalPoints    int            `json:"total_points"`
}

// Score draws one athlete's round score. With penalties set, a second draw
// decides whether a card or own goal is deducted.
func Score(rng Rand, a model.Athlete, penalties bool) PlayerPoints {
	pp := PlayerPoints{
		Name:     a.Name,
		Position: a.Position,
		Base:     rng.Intn(5),
		Bonus:    Bonus(a.Price),
	}
	pp.Points = pp.Base + pp.Bonus
	if penalties {
		pp.Event = EventFor(rng.Intn(100))
		pp.Points -= pp.Event.Penalty()
	}
	return pp
}

// BuildResult scores every athlete in order and totals the round.
func BuildResult(owner string, round int, rng Rand, athletes []model.Athlete, penalties bool) *Result {
	players := make([]PlayerPoints, 0, len(athletes))
	total := 0
	for _, a := range athletes {
		pp := Score(rng, a, penalties)
		players = append(players, pp)
		total += pp.Points
	}

	return &Result{
		Owner:          owner,
		Round:          round,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Players:        players,
		TotalPoints:    total,
	}
}

// ByPosition sums points per position.
func (r *Result) ByPosition() map[model.Position]int {
	out := make(map[model.Position]int, len(model.Positions))
	for _, p := range r.Players {
		out[p.Position] += p.Points
	}
	return out
}

func WriteResult(path string, result *Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
