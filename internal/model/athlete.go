package model

import (
	"fmt"
	"strings"
)

const (
	// SquadSize is the number of athletes in a full roster.
	SquadSize = 15
	// TotalBudget is what every roster starts with.
	TotalBudget = 100.0
	// TotalRounds is the length of a season.
	TotalRounds = 10
)

type Position string

const (
	Attacker   Position = "Attacker"
	Midfielder Position = "Midfielder"
	Defender   Position = "Defender"
	Goalkeeper Position = "Goalkeeper"
)

// Positions lists the closed set in display order.
var Positions = []Position{Attacker, Midfielder, Defender, Goalkeeper}

// ParsePosition accepts the exact position name, ignoring case and surrounding space.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	for _, p := range Positions {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown position %q", s)
}

// Athlete is one catalog entry. Name, Club, Position and Price never change
// after load; Points is overwritten every simulated round.
type Athlete struct {
	Name     string   `json:"name"`
	Club     string   `json:"club"`
	Position Position `json:"position"`
	Price    float64  `json:"price"`
	Points   int      `json:"points"`
}

// Quotas maps a position to the maximum number of athletes of that position in a roster.
type Quotas map[Position]int

func DefaultQuotas() Quotas {
	return Quotas{
		Attacker:   3,
		Midfielder: 5,
		Defender:   5,
		Goalkeeper: 2,
	}
}

// Total is the roster size implied by the quota table.
func (q Quotas) Total() int {
	n := 0
	for _, v := range q {
		n += v
	}
	return n
}

// CountByPosition tallies athletes per position.
func CountByPosition(athletes []Athlete) map[Position]int {
	out := make(map[Position]int, len(Positions))
	for _, a := range athletes {
		out[a.Position]++
	}
	return out
}
