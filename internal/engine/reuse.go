package engine

import (
	"github.com/piwi3910/FormPanel/internal/model"
)

// Inventory is the shared pool of panels available for reuse, by width.
// One inventory exists per optimization run.
type Inventory map[int]int

// Add puts n panels of width w into the pool.
func (inv Inventory) Add(w, n int) {
	if n > 0 {
		inv[w] += n
	}
}

// Take removes up to n panels of width w and returns how many were taken.
func (inv Inventory) Take(w, n int) int {
	avail := inv[w]
	if avail <= 0 || n <= 0 {
		return 0
	}
	if n > avail {
		n = avail
	}
	inv[w] = avail - n
	return n
}

// Clone returns an independent copy, dropping empty widths.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for w, n := range inv {
		if n > 0 {
			out[w] = n
		}
	}
	return out
}

// CastingAllocation is the reuse outcome for one secondary casting.
type CastingAllocation struct {
	Casting   string
	Lines     []model.WidthAllocation // ascending width
	Inventory Inventory               // pool after this casting
}

// Reused returns the number of panels this casting took from the pool.
func (ca CastingAllocation) Reused() int {
	n := 0
	for _, l := range ca.Lines {
		n += l.Reused
	}
	return n
}

// New returns the number of panels this casting had to buy.
func (ca CastingAllocation) New() int {
	n := 0
	for _, l := range ca.Lines {
		n += l.New
	}
	return n
}

// Allocation is the run-wide reuse result.
type Allocation struct {
	Castings []CastingAllocation
	Baseline Inventory // pool after seeding with the primary casting
	Reused   int
	New      int
	Total    int // panels required by secondary castings
}

// Allocate walks the secondary castings in the given order against one shared
// pool. The primary's panels seed the pool as purchased baseline stock. Each
// secondary takes what it can from the pool, width by width in ascending
// order; the shortfall is bought new and added to the pool, so castings later
// in the order can reuse it.
func Allocate(primary Tally, secondaries []CastingTally, catalog *Catalog) Allocation {
	inv := make(Inventory)
	for w, n := range primary {
		inv.Add(w, n)
	}

	alloc := Allocation{
		Castings: make([]CastingAllocation, 0, len(secondaries)),
		Baseline: inv.Clone(),
	}

	for _, sec := range secondaries {
		ca := CastingAllocation{Casting: sec.Name}
		for _, w := range model.SortedWidths(sec.Tally) {
			required := sec.Tally[w]
			reused := inv.Take(w, required)
			fresh := required - reused
			inv.Add(w, fresh)

			typ := model.PanelStandard
			if !catalog.IsStandard(w) {
				typ = model.PanelCustom
			}
			ca.Lines = append(ca.Lines, model.WidthAllocation{
				Size:     w,
				Type:     typ,
				Required: required,
				Reused:   reused,
				New:      fresh,
			})

			alloc.Reused += reused
			alloc.New += fresh
			alloc.Total += required
		}
		ca.Inventory = inv.Clone()
		alloc.Castings = append(alloc.Castings, ca)
	}

	return alloc
}
