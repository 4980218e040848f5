package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/FormPanel/internal/model"
)

// Decomposer turns one side length into an ordered list of panel widths.
// Implementations must return panels summing exactly to length, with at most
// one custom panel which is always the last element.
type Decomposer interface {
	Decompose(length int) []int
}

// NewDecomposer returns the decomposer for the given algorithm.
// An empty algorithm selects greedy.
func NewDecomposer(alg model.Algorithm, catalog *Catalog) (Decomposer, error) {
	switch alg {
	case model.AlgorithmGreedy, "":
		return &GreedyDecomposer{catalog: catalog}, nil
	case model.AlgorithmMinimal:
		return &MinimalDecomposer{catalog: catalog}, nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", alg)
	}
}

// GreedyDecomposer takes the largest standard width that still fits until
// the remainder is narrower than every standard width, then closes the side
// with one custom panel.
type GreedyDecomposer struct {
	catalog *Catalog
}

func NewGreedyDecomposer(catalog *Catalog) *GreedyDecomposer {
	return &GreedyDecomposer{catalog: catalog}
}

func (d *GreedyDecomposer) Decompose(length int) []int {
	var panels []int
	remaining := length
	for remaining > 0 {
		w, ok := d.catalog.LargestAtMost(remaining)
		if !ok {
			panels = append(panels, remaining)
			break
		}
		panels = append(panels, w)
		remaining -= w
	}
	return panels
}

// MinimalDecomposer finds the fewest panels for a side. The custom panel
// keeps the greedy contract: at most one, last, and narrower than the
// smallest standard width. Ties prefer no custom panel, then the narrowest
// custom panel. Standard panels are returned widest first.
type MinimalDecomposer struct {
	catalog *Catalog
}

func NewMinimalDecomposer(catalog *Catalog) *MinimalDecomposer {
	return &MinimalDecomposer{catalog: catalog}
}

func (d *MinimalDecomposer) Decompose(length int) []int {
	if length <= 0 {
		return nil
	}

	// A fewest-panel cover has fewer than largest panels narrower than
	// largest: with more, some run of them sums to a multiple of largest and
	// fewer largest panels would replace it. From threshold on every optimal
	// cover therefore holds a largest panel, and the search only has to run
	// over what remains after filling with largest panels.
	largest := d.catalog.Largest()
	threshold := (largest-1)*(largest-1) + d.catalog.Smallest() + largest - 1
	fill := 0
	if length >= threshold {
		fill = (length-threshold)/largest + 1
	}
	rest := d.exact(length - fill*largest)

	panels := make([]int, fill, fill+len(rest))
	for i := range panels {
		panels[i] = largest
	}
	return append(panels, rest...)
}

// exact runs the fewest-panel search over every length up to length.
func (d *MinimalDecomposer) exact(length int) []int {
	if length <= 0 {
		return nil
	}
	widths := d.catalog.widths

	// count[s] = fewest standard panels summing to exactly s, -1 if unreachable
	count := make([]int, length+1)
	for s := 1; s <= length; s++ {
		count[s] = -1
		for _, w := range widths {
			if w > s {
				break
			}
			if c := count[s-w]; c >= 0 && (count[s] < 0 || c+1 < count[s]) {
				count[s] = c + 1
			}
		}
	}

	// The standard part must leave a remainder narrower than the smallest width.
	lo := length - d.catalog.Smallest() + 1
	if lo < 0 {
		lo = 0
	}
	best, bestCost := -1, 0
	for s := length; s >= lo; s-- {
		if count[s] < 0 {
			continue
		}
		cost := count[s]
		if s < length {
			cost++
		}
		if best < 0 || cost < bestCost {
			best, bestCost = s, cost
		}
	}

	panels := make([]int, 0, bestCost)
	for s := best; s > 0; {
		for i := len(widths) - 1; i >= 0; i-- {
			w := widths[i]
			if w <= s && count[s-w] == count[s]-1 {
				panels = append(panels, w)
				s -= w
				break
			}
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(panels)))

	if best < length {
		panels = append(panels, length-best)
	}
	return panels
}
