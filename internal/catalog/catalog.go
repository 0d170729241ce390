package catalog

import (
	"github.com/aatrey56/fpl-sim/internal/apperr"
	"github.com/aatrey56/fpl-sim/internal/model"
)

// Catalog is the pool of athletes nobody has rostered yet. It keeps load
// order and only ever shrinks.
type Catalog struct {
	athletes []model.Athlete
}

// New builds a catalog from athletes in the given order. Names must be unique.
func New(athletes []model.Athlete) (*Catalog, error) {
	seen := make(map[string]bool, len(athletes))
	for _, a := range athletes {
		if seen[a.Name] {
			return nil, apperr.New(apperr.CodeCatalogLoad, "duplicate athlete name: "+a.Name)
		}
		seen[a.Name] = true
	}
	out := make([]model.Athlete, len(athletes))
	copy(out, athletes)
	return &Catalog{athletes: out}, nil
}

func (c *Catalog) Len() int {
	return len(c.athletes)
}

// Snapshot returns a copy of the remaining athletes in catalog order.
func (c *Catalog) Snapshot() []model.Athlete {
	out := make([]model.Athlete, len(c.athletes))
	copy(out, c.athletes)
	return out
}

// Lookup returns the athlete named name without removing it.
func (c *Catalog) Lookup(name string) (model.Athlete, bool) {
	for _, a := range c.athletes {
		if a.Name == name {
			return a, true
		}
	}
	return model.Athlete{}, false
}

// Take removes the first athlete named name and hands it to the caller.
func (c *Catalog) Take(name string) (model.Athlete, error) {
	for i, a := range c.athletes {
		if a.Name != name {
			continue
		}
		c.athletes = append(c.athletes[:i:i], c.athletes[i+1:]...)
		return a, nil
	}
	return model.Athlete{}, apperr.New(apperr.CodeNotFound, "athlete not found: "+name)
}

// Filter returns athletes matching position and club, in catalog order.
// An empty position or club matches everything.
func (c *Catalog) Filter(position model.Position, club string) []model.Athlete {
	out := make([]model.Athlete, 0)
	for _, a := range c.athletes {
		if position != "" && a.Position != position {
			continue
		}
		if club != "" && a.Club != club {
			continue
		}
		out = append(out, a)
	}
	return out
}
