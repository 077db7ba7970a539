// Package filter evaluates search and category restrictions over the
// catalogue. States are immutable values: every mutation returns a copy.
package filter

import (
	"errors"
	"slices"
	"strings"

	"github.com/poku-e/championdex/internal/champion"
	"github.com/poku-e/championdex/internal/textnorm"
)

// All is the filter value meaning "no restriction".
const All = "all"

type Axis string

const (
	AxisRarity Axis = "rarity"
	AxisRank   Axis = "rank"
)

var (
	ErrUnknownValue = errors.New("unknown filter value")
	ErrUnknownAxis  = errors.New("unknown filter axis")
)

// Criteria is what Apply evaluates. Empty slices mean no restriction on
// that axis.
type Criteria struct {
	Search   string
	Rarities []string
	Ranks    []string
}

// Apply returns the records matching c, in input order. The input slice is
// never modified.
func Apply(list []champion.Champion, c Criteria) []champion.Champion {
	q := textnorm.Normalize(c.Search)
	out := make([]champion.Champion, 0, len(list))
	for _, ch := range list {
		if q != "" && !containsNormalized(ch.Name, q) {
			continue
		}
		if len(c.Rarities) > 0 && !slices.Contains(c.Rarities, ch.Rarity) {
			continue
		}
		if len(c.Ranks) > 0 && !slices.Contains(c.Ranks, ch.Rank) {
			continue
		}
		out = append(out, ch)
	}
	return out
}

// q must already be normalized.
func containsNormalized(name, q string) bool {
	return strings.Contains(textnorm.Normalize(name), q)
}

// Domain lists the values a state may select.
type Domain struct {
	Rarities []string
	Ranks    []string
}

// NewDomain merges the configured orders with the values actually present
// in the catalogue, keeping first-seen order and dropping duplicates.
func NewDomain(rarities, ranks []string, list []champion.Champion) Domain {
	d := Domain{
		Rarities: appendUnique(nil, rarities...),
		Ranks:    appendUnique(nil, ranks...),
	}
	for _, ch := range list {
		if ch.Rarity != "" {
			d.Rarities = appendUnique(d.Rarities, ch.Rarity)
		}
		if ch.Rank != "" {
			d.Ranks = appendUnique(d.Ranks, ch.Rank)
		}
	}
	return d
}

func (d Domain) values(axis Axis) ([]string, error) {
	switch axis {
	case AxisRarity:
		return d.Rarities, nil
	case AxisRank:
		return d.Ranks, nil
	}
	return nil, ErrUnknownAxis
}

func appendUnique(dst []string, vals ...string) []string {
	for _, v := range vals {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
