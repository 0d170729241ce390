package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/aatrey56/fpl-sim/internal/squad"
)

// RosterSnapshot is a point-in-time copy of a roster.
type RosterSnapshot struct {
	Owner          string        `json:"owner"`
	Round          int           `json:"round"`
	GeneratedAtUTC string        `json:"generated_at_utc"`
	InitialBudget  float64       `json:"initial_budget"`
	Remaining      float64       `json:"remaining_budget"`
	Members        []squad.Entry `json:"members"`
}

func BuildRosterSnapshot(r *squad.Roster, round int) *RosterSnapshot {
	return &RosterSnapshot{
		Owner:          r.Owner,
		Round:          round,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		InitialBudget:  r.InitialBudget(),
		Remaining:      r.Remaining(),
		Members:        r.List(),
	}
}

func WriteRosterSnapshot(path string, snapshot *RosterSnapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
