package draft

import (
	"sort"

	"github.com/aatrey56/fpl-sim/internal/catalog"
	"github.com/aatrey56/fpl-sim/internal/model"
	"github.com/aatrey56/fpl-sim/internal/squad"
)

// Result describes one autofill pass.
type Result struct {
	Owner       string          `json:"owner"`
	Picked      []model.Athlete `json:"picked"`
	Size        int             `json:"size"`
	Remaining   float64         `json:"remaining_budget"`
	Full        bool            `json:"full"`
	AlreadyFull bool            `json:"already_full,omitempty"`
}

// Fill greedily tops up roster from cat, cheapest first. Members already on
// the roster count against the quotas. Picks are removed from the catalog as
// they are made and stay on the roster even when it cannot be completed.
//
// There is no backtracking: once a pick is made it stays, even if the fill
// then comes up short.
func Fill(cat *catalog.Catalog, roster *squad.Roster) Result {
	res := Result{Owner: roster.Owner}
	if roster.Full() {
		res.AlreadyFull = true
		res.Full = true
		res.Size = roster.Len()
		res.Remaining = roster.Remaining()
		return res
	}

	candidates := cat.Snapshot()
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Price < candidates[j].Price
	})

	for _, c := range candidates {
		if roster.Full() {
			break
		}
		if roster.CanAdmit(c) != nil {
			continue
		}
		a, err := cat.Take(c.Name)
		if err != nil {
			continue
		}
		roster.Add(a)
		res.Picked = append(res.Picked, a)
	}

	res.Size = roster.Len()
	res.Remaining = roster.Remaining()
	res.Full = roster.Full()
	return res
}
