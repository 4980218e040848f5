package engine

import (
	"fmt"
	"sort"
)

// Catalog is the ordered set of standard panel widths plus the custom panel
// policy. It is immutable after construction.
type Catalog struct {
	widths         []int // ascending, distinct
	standard       map[int]struct{}
	minCustomWidth int
}

// NewCatalog validates and normalizes the standard widths. Duplicates are
// dropped; an empty list or any non-positive width is a misconfiguration.
func NewCatalog(widths []int, minCustomWidth int) (*Catalog, error) {
	if len(widths) == 0 {
		return nil, fmt.Errorf("%w: no standard widths configured", ErrCatalogMisconfigured)
	}
	if minCustomWidth < 0 {
		return nil, fmt.Errorf("%w: negative minimum custom width %d", ErrCatalogMisconfigured, minCustomWidth)
	}

	sorted := append([]int(nil), widths...)
	sort.Ints(sorted)
	if sorted[0] <= 0 {
		return nil, fmt.Errorf("%w: standard width %d is not positive", ErrCatalogMisconfigured, sorted[0])
	}

	c := &Catalog{
		standard:       make(map[int]struct{}, len(sorted)),
		minCustomWidth: minCustomWidth,
	}
	for _, w := range sorted {
		if _, dup := c.standard[w]; dup {
			continue
		}
		c.standard[w] = struct{}{}
		c.widths = append(c.widths, w)
	}
	return c, nil
}

// Widths returns a copy of the standard widths in ascending order.
func (c *Catalog) Widths() []int {
	return append([]int(nil), c.widths...)
}

// IsStandard reports whether width is in the catalog.
func (c *Catalog) IsStandard(width int) bool {
	_, ok := c.standard[width]
	return ok
}

func (c *Catalog) Smallest() int { return c.widths[0] }

func (c *Catalog) Largest() int { return c.widths[len(c.widths)-1] }

// MinCustomWidth is the narrowest custom panel the site accepts without a
// warning. Zero means no policy.
func (c *Catalog) MinCustomWidth() int { return c.minCustomWidth }

// LargestAtMost returns the largest standard width <= n.
func (c *Catalog) LargestAtMost(n int) (int, bool) {
	// index of the first width > n
	i := sort.SearchInts(c.widths, n+1)
	if i == 0 {
		return 0, false
	}
	return c.widths[i-1], true
}

func (c *Catalog) String() string {
	return fmt.Sprintf("%v", c.widths)
}
