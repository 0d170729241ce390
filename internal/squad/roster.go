package squad

import (
	"fmt"

	"github.com/aatrey56/fpl-sim/internal/apperr"
	"github.com/aatrey56/fpl-sim/internal/model"
)

// Roster is an ordered squad with a budget. The remaining budget is always
// derived from the initial budget and the members' prices, so refunds land
// back on exactly the value they left.
type Roster struct {
	Owner   string
	budget  float64
	quotas  model.Quotas
	members []model.Athlete
}

// budgetEpsilon absorbs float drift in Remaining, so a price equal to the
// remaining budget is admitted even when the prices are not binary-exact.
const budgetEpsilon = 1e-9

// Entry is one row of a roster listing.
type Entry struct {
	Index    int            `json:"index"`
	Name     string         `json:"name"`
	Club     string         `json:"club"`
	Position model.Position `json:"position"`
	Price    float64        `json:"price"`
	Points   int            `json:"points"`
}

func New(owner string, budget float64, quotas model.Quotas) *Roster {
	return &Roster{
		Owner:  owner,
		budget: budget,
		quotas: quotas,
	}
}

func (r *Roster) Len() int {
	return len(r.members)
}

func (r *Roster) Full() bool {
	return len(r.members) >= r.quotas.Total()
}

func (r *Roster) InitialBudget() float64 {
	return r.budget
}

func (r *Roster) Quotas() model.Quotas {
	return r.quotas
}

// Spent sums member prices in roster order.
func (r *Roster) Spent() float64 {
	total := 0.0
	for _, m := range r.members {
		total += m.Price
	}
	return total
}

func (r *Roster) Remaining() float64 {
	return r.budget - r.Spent()
}

func (r *Roster) Counts() map[model.Position]int {
	return model.CountByPosition(r.members)
}

// Members returns a copy of the roster in insertion order.
func (r *Roster) Members() []model.Athlete {
	out := make([]model.Athlete, len(r.members))
	copy(out, r.members)
	return out
}

// CanAdmit checks budget and quota for a candidate without changing the roster.
func (r *Roster) CanAdmit(a model.Athlete) error {
	if a.Price > r.Remaining()+budgetEpsilon {
		return apperr.New(apperr.CodeInsufficientBudget,
			fmt.Sprintf("not enough budget for %s: price %.1f, remaining %.1f", a.Name, a.Price, r.Remaining()))
	}
	if r.Counts()[a.Position] >= r.quotas[a.Position] {
		return apperr.New(apperr.CodePositionLimitReached,
			fmt.Sprintf("position limit reached for %s", a.Position))
	}
	return nil
}

// Add appends a without any checks; callers run CanAdmit first.
func (r *Roster) Add(a model.Athlete) {
	a.Points = 0
	r.members = append(r.members, a)
}

// Sell removes the member at 1-based index and returns it. Later members
// move up one place.
func (r *Roster) Sell(index int) (model.Athlete, error) {
	if len(r.members) == 0 {
		return model.Athlete{}, apperr.New(apperr.CodeInvalidIndex, "roster is empty")
	}
	if index < 1 || index > len(r.members) {
		return model.Athlete{}, apperr.New(apperr.CodeInvalidIndex,
			fmt.Sprintf("index %d outside 1..%d", index, len(r.members)))
	}
	sold := r.members[index-1]
	r.members = append(r.members[:index-1:index-1], r.members[index:]...)
	return sold, nil
}

// Clear empties the roster and returns what was in it. The full price of
// every member goes back to the budget.
func (r *Roster) Clear() []model.Athlete {
	out := r.members
	r.members = nil
	return out
}

// SetPoints overwrites the round points of the member at 0-based position i.
func (r *Roster) SetPoints(i, points int) {
	r.members[i].Points = points
}

// List renders the roster with 1-based display indices.
func (r *Roster) List() []Entry {
	out := make([]Entry, 0, len(r.members))
	for i, m := range r.members {
		out = append(out, Entry{
			Index:    i + 1,
			Name:     m.Name,
			Club:     m.Club,
			Position: m.Position,
			Price:    m.Price,
			Points:   m.Points,
		})
	}
	return out
}
