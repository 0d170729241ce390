package reconcile

import (
	"path/filepath"
	"testing"

	"github.com/aatrey56/fpl-sim/internal/ledger"
	"github.com/aatrey56/fpl-sim/internal/model"
	"github.com/aatrey56/fpl-sim/internal/squad"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func ath(name string, price float64) model.Athlete {
	return model.Athlete{Name: name, Position: model.Midfielder, Price: price}
}

func record(l *ledger.Ledger, owner string, kind ledger.Kind, a model.Athlete) {
	l.Record(ledger.Entry{Owner: owner, Kind: kind, Athlete: a.Name, Price: a.Price})
}

// ---------------------------------------------------------------------------
// BuildOwnershipMap
// ---------------------------------------------------------------------------

func TestBuildOwnershipMap_Replay(t *testing.T) {
	l := ledger.New("s")
	record(l, "user", ledger.KindBuy, ath("A", 5))
	record(l, "user", ledger.KindBuy, ath("B", 6))
	record(l, "bot", ledger.KindAutofill, ath("C", 4))
	record(l, "user", ledger.KindSell, ath("A", 5))

	m := BuildOwnershipMap(l)
	if m["user"]["A"] {
		t.Error("A was sold")
	}
	if !m["user"]["B"] || !m["bot"]["C"] {
		t.Errorf("ownership = %v", m)
	}
}

func TestReplayBudget(t *testing.T) {
	l := ledger.New("s")
	record(l, "user", ledger.KindBuy, ath("A", 5))
	record(l, "user", ledger.KindBuy, ath("B", 6))
	record(l, "user", ledger.KindClear, ath("A", 5))
	record(l, "user", ledger.KindClear, ath("B", 6))
	record(l, "user", ledger.KindBuy, ath("C", 7.5))

	if got := ReplayBudget(l, "user", 100); got != 92.5 {
		t.Errorf("ReplayBudget = %v, want 92.5", got)
	}
}

// ---------------------------------------------------------------------------
// BuildReport
// ---------------------------------------------------------------------------

func TestBuildReport_Consistent(t *testing.T) {
	l := ledger.New("s")
	r := squad.New("user", 100, model.DefaultQuotas())
	for _, a := range []model.Athlete{ath("A", 5), ath("B", 6)} {
		r.Add(a)
		record(l, "user", ledger.KindBuy, a)
	}

	snaps := map[string]*ledger.RosterSnapshot{"user": ledger.BuildRosterSnapshot(r, 0)}
	rep := BuildReport(l, 0, snaps, []string{"user"})
	if !rep.OK() {
		t.Errorf("expected clean report, got %+v", rep.Entries)
	}
	if rep.SessionID != "s" {
		t.Errorf("SessionID = %q", rep.SessionID)
	}
}

func TestBuildReport_Mismatches(t *testing.T) {
	l := ledger.New("s")
	record(l, "user", ledger.KindBuy, ath("Ghost", 5))

	r := squad.New("user", 100, model.DefaultQuotas())
	r.Add(ath("Untracked", 6))

	snaps := map[string]*ledger.RosterSnapshot{"user": ledger.BuildRosterSnapshot(r, 2)}
	rep := BuildReport(l, 2, snaps, []string{"user", "bot"})

	if len(rep.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(rep.Entries))
	}
	u := rep.Entries[0]
	if len(u.NotInLedger) != 1 || u.NotInLedger[0] != "Untracked" {
		t.Errorf("NotInLedger = %v", u.NotInLedger)
	}
	if len(u.NotOnRoster) != 1 || u.NotOnRoster[0] != "Ghost" {
		t.Errorf("NotOnRoster = %v", u.NotOnRoster)
	}
	if !u.BudgetMismatch || u.LedgerBudget != 95 || u.RosterBudget != 94 {
		t.Errorf("budget = ledger %v roster %v mismatch %v", u.LedgerBudget, u.RosterBudget, u.BudgetMismatch)
	}
	if !rep.Entries[1].MissingSnapshot || rep.Entries[1].Owner != "bot" {
		t.Errorf("bot entry = %+v", rep.Entries[1])
	}

	if err := WriteReport(filepath.Join(t.TempDir(), "audit.json"), rep); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
}
