package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aatrey56/fpl-sim/internal/model"
	"github.com/aatrey56/fpl-sim/internal/squad"
)

// ---------------------------------------------------------------------------
// Ledger
// ---------------------------------------------------------------------------

func TestRecord_AssignsSeqAndID(t *testing.T) {
	l := New("s1")
	a := l.Record(Entry{Owner: "user", Kind: KindBuy, Athlete: "Saka", Price: 9.5})
	b := l.Record(Entry{Owner: "bot", Kind: KindAutofill, Athlete: "Raya", Price: 5.5})

	if a.Seq != 1 || b.Seq != 2 {
		t.Errorf("Seq = %d, %d, want 1, 2", a.Seq, b.Seq)
	}
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs should be unique and non-empty: %q %q", a.ID, b.ID)
	}
	if _, err := time.Parse(time.RFC3339, a.AtUTC); err != nil {
		t.Errorf("AtUTC not RFC3339: %q", a.AtUTC)
	}
}

func TestForOwner(t *testing.T) {
	l := New("s1")
	l.Record(Entry{Owner: "user", Kind: KindBuy, Athlete: "A"})
	l.Record(Entry{Owner: "bot", Kind: KindAutofill, Athlete: "B"})
	l.Record(Entry{Owner: "user", Kind: KindSell, Athlete: "A"})

	got := l.ForOwner("user")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Kind != KindBuy || got[1].Kind != KindSell {
		t.Errorf("kinds = %s, %s", got[0].Kind, got[1].Kind)
	}
}

func TestEntryAdded(t *testing.T) {
	cases := map[Kind]bool{KindBuy: true, KindAutofill: true, KindSell: false, KindClear: false}
	for k, want := range cases {
		if got := (Entry{Kind: k}).Added(); got != want {
			t.Errorf("Added(%s) = %v, want %v", k, got, want)
		}
	}
}

func TestWriteLedger(t *testing.T) {
	l := New("s1")
	l.Record(Entry{Owner: "user", Kind: KindBuy, Athlete: "A", Price: 4})

	path := filepath.Join(t.TempDir(), "nested", "ledger.json")
	if err := WriteLedger(path, l); err != nil {
		t.Fatalf("WriteLedger: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Ledger
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.SessionID != "s1" || len(got.Entries) != 1 || got.Entries[0].Athlete != "A" {
		t.Errorf("round-tripped ledger = %+v", got)
	}
}

// ---------------------------------------------------------------------------
// RosterSnapshot
// ---------------------------------------------------------------------------

func TestBuildRosterSnapshot(t *testing.T) {
	r := squad.New("user", 100, model.DefaultQuotas())
	r.Add(model.Athlete{Name: "A", Position: model.Attacker, Price: 7})
	r.Add(model.Athlete{Name: "B", Position: model.Defender, Price: 4.5})

	snap := BuildRosterSnapshot(r, 3)
	if snap.Owner != "user" || snap.Round != 3 {
		t.Errorf("Owner/Round = %s/%d", snap.Owner, snap.Round)
	}
	if snap.Remaining != 88.5 || snap.InitialBudget != 100 {
		t.Errorf("budget = %v of %v", snap.Remaining, snap.InitialBudget)
	}
	if len(snap.Members) != 2 || snap.Members[1].Index != 2 {
		t.Errorf("members = %+v", snap.Members)
	}

	path := filepath.Join(t.TempDir(), "snap.json")
	if err := WriteRosterSnapshot(path, snap); err != nil {
		t.Fatalf("WriteRosterSnapshot: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}
}
