package summary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/aatrey56/fpl-sim/internal/model"
	"github.com/aatrey56/fpl-sim/internal/points"
	"github.com/aatrey56/fpl-sim/internal/season"
)

// PositionPoints sums points per position over a whole season.
type PositionPoints struct {
	Attacker   int `json:"attacker"`
	Midfielder int `json:"midfielder"`
	Defender   int `json:"defender"`
	Goalkeeper int `json:"goalkeeper"`
}

func (p *PositionPoints) add(pos model.Position, pts int) {
	switch pos {
	case model.Attacker:
		p.Attacker += pts
	case model.Midfielder:
		p.Midfielder += pts
	case model.Defender:
		p.Defender += pts
	case model.Goalkeeper:
		p.Goalkeeper += pts
	}
}

type RoundStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Best   int     `json:"best"`
	Worst  int     `json:"worst"`
}

type Side struct {
	Owner      string         `json:"owner"`
	Total      int            `json:"total"`
	Rounds     []int          `json:"rounds"`
	Stats      RoundStats     `json:"stats"`
	ByPosition PositionPoints `json:"by_position"`
}

type Penalties struct {
	RedCards    int `json:"red_cards"`
	YellowCards int `json:"yellow_cards"`
	OwnGoals    int `json:"own_goals"`
}

type SeasonSummary struct {
	SessionID      string         `json:"session_id"`
	GeneratedAtUTC string         `json:"generated_at_utc"`
	RoundsPlayed   int            `json:"rounds_played"`
	RoundsTotal    int            `json:"rounds_total"`
	State          season.State   `json:"state"`
	Verdict        season.Verdict `json:"verdict,omitempty"`
	User           Side           `json:"user"`
	Opponent       Side           `json:"opponent"`
	RoundsWon      int            `json:"rounds_won"`
	RoundsLost     int            `json:"rounds_lost"`
	RoundsDrawn    int            `json:"rounds_drawn"`
	Penalties      Penalties      `json:"penalties"`
}

// BuildSeasonSummary aggregates everything played so far. It can be called
// mid-season; Verdict stays empty until the season is complete.
func BuildSeasonSummary(sessionID string, s *season.Season) *SeasonSummary {
	out := &SeasonSummary{
		SessionID:      sessionID,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		RoundsPlayed:   s.Round(),
		RoundsTotal:    s.Rounds(),
		State:          s.State(),
		Verdict:        s.Verdict(),
	}

	history := s.History()
	userRounds := make([]int, 0, len(history))
	oppRounds := make([]int, 0, len(history))
	for _, r := range history {
		out.User.Owner = r.User.Owner
		out.Opponent.Owner = r.Opponent.Owner
		userRounds = append(userRounds, r.User.TotalPoints)
		oppRounds = append(oppRounds, r.Opponent.TotalPoints)

		for _, p := range r.User.Players {
			out.User.ByPosition.add(p.Position, p.Points)
			switch p.Event {
			case points.RedCard:
				out.Penalties.RedCards++
			case points.YellowCard:
				out.Penalties.YellowCards++
			case points.OwnGoal:
				out.Penalties.OwnGoals++
			}
		}
		for _, p := range r.Opponent.Players {
			out.Opponent.ByPosition.add(p.Position, p.Points)
		}

		switch {
		case r.User.TotalPoints > r.Opponent.TotalPoints:
			out.RoundsWon++
		case r.User.TotalPoints < r.Opponent.TotalPoints:
			out.RoundsLost++
		default:
			out.RoundsDrawn++
		}
	}

	out.User.Rounds = userRounds
	out.User.Total = s.UserTotal()
	out.User.Stats = roundStats(userRounds)
	out.Opponent.Rounds = oppRounds
	out.Opponent.Total = s.OpponentTotal()
	out.Opponent.Stats = roundStats(oppRounds)
	return out
}

func roundStats(rounds []int) RoundStats {
	if len(rounds) == 0 {
		return RoundStats{}
	}
	xs := make([]float64, len(rounds))
	best, worst := rounds[0], rounds[0]
	for i, r := range rounds {
		xs[i] = float64(r)
		if r > best {
			best = r
		}
		if r < worst {
			worst = r
		}
	}
	rs := RoundStats{
		Mean:  stat.Mean(xs, nil),
		Best:  best,
		Worst: worst,
	}
	if len(xs) > 1 {
		rs.StdDev = stat.StdDev(xs, nil)
	}
	return rs
}

func WriteSeasonSummary(path string, s *SeasonSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
