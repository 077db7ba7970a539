package filter

import (
	"fmt"
	"slices"
)

// Single is the dropdown variant: one rarity (or All) plus a search string.
type Single struct {
	Search string `json:"search"`
	Rarity string `json:"rarity"`
}

func NewSingle() Single {
	return Single{Rarity: All}
}

func (s Single) WithSearch(q string) Single {
	s.Search = q
	return s
}

// WithRarity selects v, which must be All or a rarity of d. On error the
// receiver is returned unchanged.
func (s Single) WithRarity(d Domain, v string) (Single, error) {
	if v == "" {
		v = All
	}
	if v != All && !slices.Contains(d.Rarities, v) {
		return s, fmt.Errorf("%w: rarity %q", ErrUnknownValue, v)
	}
	s.Rarity = v
	return s, nil
}

func (s Single) Criteria() Criteria {
	c := Criteria{Search: s.Search}
	if s.Rarity != "" && s.Rarity != All {
		c.Rarities = []string{s.Rarity}
	}
	return c
}

// Multi is the toggle-button variant: independent rarity and rank sets.
// The "all" toggle is active exactly when both sets are empty.
type Multi struct {
	Search   string   `json:"search"`
	Rarities []string `json:"rarities"`
	Ranks    []string `json:"ranks"`
}

func NewMulti() Multi {
	return Multi{}
}

func (m Multi) WithSearch(q string) Multi {
	m.Search = q
	return m
}

// AllActive reports whether no category restriction is selected.
func (m Multi) AllActive() bool {
	return len(m.Rarities) == 0 && len(m.Ranks) == 0
}

// Toggle flips value on axis. The value All clears both sets regardless of
// axis. Values are kept in domain order so equal selections compare equal.
func (m Multi) Toggle(d Domain, axis Axis, value string) (Multi, error) {
	if value == All {
		return Multi{Search: m.Search}, nil
	}
	valid, err := d.values(axis)
	if err != nil {
		return m, fmt.Errorf("%w: %q", err, axis)
	}
	if !slices.Contains(valid, value) {
		return m, fmt.Errorf("%w: %s %q", ErrUnknownValue, axis, value)
	}

	next := Multi{
		Search:   m.Search,
		Rarities: slices.Clone(m.Rarities),
		Ranks:    slices.Clone(m.Ranks),
	}
	set := &next.Rarities
	if axis == AxisRank {
		set = &next.Ranks
	}
	if i := slices.Index(*set, value); i >= 0 {
		*set = slices.Delete(*set, i, i+1)
	} else {
		*set = append(*set, value)
		slices.SortStableFunc(*set, func(a, b string) int {
			return slices.Index(valid, a) - slices.Index(valid, b)
		})
	}
	if len(*set) == 0 {
		*set = nil
	}
	return next, nil
}

// Active returns the data-filter values whose toggle is lit, "all"
// included.
func (m Multi) Active() []string {
	if m.AllActive() {
		return []string{All}
	}
	out := make([]string, 0, len(m.Rarities)+len(m.Ranks))
	out = append(out, m.Rarities...)
	return append(out, m.Ranks...)
}

func (m Multi) Criteria() Criteria {
	return Criteria{
		Search:   m.Search,
		Rarities: slices.Clone(m.Rarities),
		Ranks:    slices.Clone(m.Ranks),
	}
}
