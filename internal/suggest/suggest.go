// Package suggest proposes champion names for partial or misspelled
// queries.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"

	"github.com/poku-e/championdex/internal/textnorm"
)

// MaxDistance is the largest edit distance Closest accepts.
const MaxDistance = 3

// Index holds the normalized names once so lookups don't re-fold the
// catalogue on every keystroke.
type Index struct {
	names []string
	norm  []string
}

func NewIndex(names []string) *Index {
	idx := &Index{names: append([]string(nil), names...), norm: make([]string, len(names))}
	for i, n := range names {
		idx.norm[i] = textnorm.Normalize(n)
	}
	return idx
}

// Complete returns up to limit names matching q, prefix matches first,
// then fuzzy matches by score.
func (idx *Index) Complete(q string, limit int) []string {
	q = textnorm.Normalize(strings.TrimSpace(q))
	if q == "" || len(idx.names) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	var out []string
	used := make([]bool, len(idx.names))
	for i, n := range idx.norm {
		if strings.HasPrefix(n, q) {
			out = append(out, idx.names[i])
			used[i] = true
			if len(out) == limit {
				return out
			}
		}
	}
	for _, m := range fuzzy.Find(q, idx.norm) {
		if used[m.Index] {
			continue
		}
		out = append(out, idx.names[m.Index])
		used[m.Index] = true
		if len(out) == limit {
			break
		}
	}
	return out
}

// Closest returns the catalogue name nearest to q by edit distance, or ""
// when nothing is within MaxDistance. Substring hits count for half.
func (idx *Index) Closest(q string) string {
	q = textnorm.Normalize(strings.TrimSpace(q))
	if q == "" {
		return ""
	}
	best, bestScore := "", float64(MaxDistance)+0.5
	for i, n := range idx.norm {
		d := float64(levenshtein.ComputeDistance(q, n))
		if strings.Contains(n, q) || strings.Contains(q, n) {
			d *= 0.5
		}
		if d < bestScore {
			best, bestScore = idx.names[i], d
		}
	}
	return best
}
