package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-sim/internal/apperr"
	"github.com/aatrey56/fpl-sim/internal/model"
)

const sample = `Saka,Arsenal,Midfielder,9.5
Raya,Arsenal,Goalkeeper,5.5
Haaland,Man City,Attacker,14
Gabriel,Arsenal,Defender,6
Foden,Man City,Midfielder,8.5
`

func TestParse_Valid(t *testing.T) {
	cat, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Equal(t, 5, cat.Len())

	snap := cat.Snapshot()
	assert.Equal(t, "Saka", snap[0].Name)
	assert.Equal(t, model.Goalkeeper, snap[1].Position)
	assert.Equal(t, 14.0, snap[2].Price)
	assert.Equal(t, "Man City", snap[4].Club)
}

func TestParse_HeaderAndBlankLines(t *testing.T) {
	in := "name,club,position,price\n\nSaka,Arsenal,Midfielder,9.5\n\n"
	cat, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line string
	}{
		{"too few fields", "Saka,Arsenal,Midfielder,9.5\nRaya,Arsenal,5.5\n", "line 2"},
		{"bad price", "Saka,Arsenal,Midfielder,cheap\n", "line 1"},
		{"negative price", "Saka,Arsenal,Midfielder,-1\n", "line 1"},
		{"unknown position", "Saka,Arsenal,Winger,9.5\n", "line 1"},
		{"empty name", ",Arsenal,Midfielder,9.5\n", "line 1"},
		{"duplicate", "Saka,Arsenal,Midfielder,9.5\nSaka,Arsenal,Midfielder,9.5\n", "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrCatalogLoad), "want catalog load error, got %v", err)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestTake_RemovesFirstMatchOnly(t *testing.T) {
	cat, err := ParseBytes([]byte(sample))
	require.NoError(t, err)
	before := cat.Snapshot()

	a, err := cat.Take("Raya")
	require.NoError(t, err)
	assert.Equal(t, "Raya", a.Name)
	assert.Equal(t, 4, cat.Len())

	_, ok := cat.Lookup("Raya")
	assert.False(t, ok)

	// Earlier snapshots are unaffected.
	assert.Equal(t, "Raya", before[1].Name)
	assert.Len(t, before, 5)

	_, err = cat.Take("Raya")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestFilter(t *testing.T) {
	cat, err := ParseBytes([]byte(sample))
	require.NoError(t, err)

	mids := cat.Filter(model.Midfielder, "Arsenal")
	require.Len(t, mids, 1)
	assert.Equal(t, "Saka", mids[0].Name)

	assert.Len(t, cat.Filter("", "Man City"), 2)
	assert.Len(t, cat.Filter(model.Attacker, ""), 1)
	assert.Empty(t, cat.Filter(model.Goalkeeper, "Man City"))
}

func TestParse_BareQuoteInName(t *testing.T) {
	cat, err := Parse(strings.NewReader("O\"Neil,Arsenal,Defender,5\nSaka,Arsenal,Midfielder,9.5\n"))
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	a, ok := cat.Lookup(`O"Neil`)
	require.True(t, ok)
	assert.Equal(t, model.Defender, a.Position)
	assert.Equal(t, 5.0, a.Price)
}
