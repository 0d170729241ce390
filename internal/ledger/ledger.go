package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/aatrey56/fpl-sim/internal/model"
)

type Kind string

const (
	KindBuy      Kind = "buy"
	KindSell     Kind = "sell"
	KindAutofill Kind = "autofill"
	KindClear    Kind = "clear"
)

// Entry records one athlete moving on or off a roster. A clear writes one
// entry per refunded member.
type Entry struct {
	ID          string         `json:"id"`
	Seq         int            `json:"seq"`
	Owner       string         `json:"owner"`
	Kind        Kind           `json:"kind"`
	Athlete     string         `json:"athlete"`
	Position    model.Position `json:"position"`
	Price       float64        `json:"price"`
	BudgetAfter float64        `json:"budget_after"`
	Round       int            `json:"round"`
	AtUTC       string         `json:"at_utc"`
}

// Added reports whether the entry put the athlete on the roster.
func (e Entry) Added() bool {
	return e.Kind == KindBuy || e.Kind == KindAutofill
}

// Ledger is an append-only log of roster changes for one session.
type Ledger struct {
	SessionID string  `json:"session_id"`
	Entries   []Entry `json:"entries"`
}

func New(sessionID string) *Ledger {
	return &Ledger{SessionID: sessionID, Entries: make([]Entry, 0, 64)}
}

// Record appends e, filling in ID, sequence number and timestamp.
func (l *Ledger) Record(e Entry) Entry {
	e.ID = uuid.NewString()
	e.Seq = len(l.Entries) + 1
	e.AtUTC = time.Now().UTC().Format(time.RFC3339)
	l.Entries = append(l.Entries, e)
	return e
}

// ForOwner returns the owner's entries in sequence order.
func (l *Ledger) ForOwner(owner string) []Entry {
	out := make([]Entry, 0)
	for _, e := range l.Entries {
		if e.Owner == owner {
			out = append(out, e)
		}
	}
	return out
}

func WriteLedger(path string, l *Ledger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
