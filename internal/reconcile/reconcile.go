package reconcile

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/aatrey56/fpl-sim/internal/ledger"
)

// budgetTolerance absorbs float drift between a replayed running balance and
// the roster's own derived balance.
const budgetTolerance = 1e-6

type OwnerMismatch struct {
	Owner           string   `json:"owner"`
	NotInLedger     []string `json:"not_in_ledger"`
	NotOnRoster     []string `json:"not_on_roster"`
	LedgerBudget    float64  `json:"ledger_budget"`
	RosterBudget    float64  `json:"roster_budget"`
	BudgetMismatch  bool     `json:"budget_mismatch"`
	MissingSnapshot bool     `json:"missing_snapshot"`
}

type Report struct {
	SessionID      string          `json:"session_id"`
	Round          int             `json:"round"`
	GeneratedAtUTC string          `json:"generated_at_utc"`
	Entries        []OwnerMismatch `json:"entries"`
}

// OK reports whether every roster matched its ledger replay.
func (r *Report) OK() bool {
	return len(r.Entries) == 0
}

// BuildOwnershipMap replays the ledger into the set of athlete names each
// owner should currently hold.
func BuildOwnershipMap(l *ledger.Ledger) map[string]map[string]bool {
	entries := make([]ledger.Entry, len(l.Entries))
	copy(entries, l.Entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Seq < entries[j].Seq
	})

	owned := make(map[string]map[string]bool)
	for _, e := range entries {
		if _, ok := owned[e.Owner]; !ok {
			owned[e.Owner] = make(map[string]bool)
		}
		if e.Added() {
			owned[e.Owner][e.Athlete] = true
		} else {
			delete(owned[e.Owner], e.Athlete)
		}
	}
	return owned
}

// ReplayBudget recomputes owner's balance from initial by applying each
// ledger entry in order.
func ReplayBudget(l *ledger.Ledger, owner string, initial float64) float64 {
	budget := initial
	for _, e := range l.ForOwner(owner) {
		if e.Added() {
			budget -= e.Price
		} else {
			budget += e.Price
		}
	}
	return budget
}

// BuildReport compares the ledger replay with a snapshot of every owner.
// Owners with no differences are left out.
func BuildReport(l *ledger.Ledger, round int, snapshots map[string]*ledger.RosterSnapshot, owners []string) *Report {
	owned := BuildOwnershipMap(l)
	entries := make([]OwnerMismatch, 0)

	for _, owner := range owners {
		snap := snapshots[owner]
		if snap == nil {
			entries = append(entries, OwnerMismatch{Owner: owner, MissingSnapshot: true})
			continue
		}

		onRoster := make(map[string]bool, len(snap.Members))
		notInLedger := make([]string, 0)
		for _, m := range snap.Members {
			onRoster[m.Name] = true
			if !owned[owner][m.Name] {
				notInLedger = append(notInLedger, m.Name)
			}
		}
		notOnRoster := make([]string, 0)
		for name := range owned[owner] {
			if !onRoster[name] {
				notOnRoster = append(notOnRoster, name)
			}
		}
		sort.Strings(notOnRoster)

		ledgerBudget := ReplayBudget(l, owner, snap.InitialBudget)
		budgetOff := math.Abs(ledgerBudget-snap.Remaining) > budgetTolerance

		if len(notInLedger) > 0 || len(notOnRoster) > 0 || budgetOff {
			entries = append(entries, OwnerMismatch{
				Owner:          owner,
				NotInLedger:    notInLedger,
				NotOnRoster:    notOnRoster,
				LedgerBudget:   ledgerBudget,
				RosterBudget:   snap.Remaining,
				BudgetMismatch: budgetOff,
			})
		}
	}

	return &Report{
		SessionID:      l.SessionID,
		Round:          round,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Entries:        entries,
	}
}

func WriteReport(path string, report *Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
