package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aatrey56/fpl-sim/internal/apperr"
	"github.com/aatrey56/fpl-sim/internal/model"
)

// Parse reads name,club,position,price records. Any malformed record fails
// the whole load; blank lines are skipped and a leading header row whose
// price column reads "price" is ignored.
func Parse(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	athletes := make([]model.Athlete, 0, 256)
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeCatalogLoad, "reading catalog", err)
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if len(rec) == 4 && strings.EqualFold(strings.TrimSpace(rec[3]), "price") {
				continue
			}
		}

		a, err := parseRecord(rec)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeCatalogLoad, fmt.Sprintf("catalog line %d", line), err)
		}
		athletes = append(athletes, a)
	}
	return New(athletes)
}

// ParseBytes is Parse over an in-memory file body.
func ParseBytes(body []byte) (*Catalog, error) {
	return Parse(bytes.NewReader(body))
}

func parseRecord(rec []string) (model.Athlete, error) {
	if len(rec) != 4 {
		return model.Athlete{}, fmt.Errorf("want 4 fields, got %d", len(rec))
	}
	name := strings.TrimSpace(rec[0])
	club := strings.TrimSpace(rec[1])
	if name == "" {
		return model.Athlete{}, fmt.Errorf("empty name")
	}
	pos, err := model.ParsePosition(rec[2])
	if err != nil {
		return model.Athlete{}, err
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
	if err != nil {
		return model.Athlete{}, fmt.Errorf("bad price %q", rec[3])
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return model.Athlete{}, fmt.Errorf("invalid price %v", price)
	}
	return model.Athlete{
		Name:     name,
		Club:     club,
		Position: pos,
		Price:    price,
	}, nil
}
