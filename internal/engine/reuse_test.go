package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FormPanel/internal/model"
)

func TestInventory_Take(t *testing.T) {
	inv := Inventory{600: 2}

	assert.Equal(t, 1, inv.Take(600, 1))
	assert.Equal(t, 1, inv.Take(600, 5), "take is capped by availability")
	assert.Equal(t, 0, inv.Take(600, 1))
	assert.Equal(t, 0, inv.Take(100, 1))
	assert.Equal(t, 0, inv.Take(600, 0))
}

func TestInventory_CloneDropsEmpty(t *testing.T) {
	inv := Inventory{600: 0, 100: 2}
	cp := inv.Clone()
	assert.Equal(t, Inventory{100: 2}, cp)

	cp[100] = 9
	assert.Equal(t, 2, inv[100])
}

func TestAllocate_FullReuseFromPrimary(t *testing.T) {
	c := testCatalog(t)
	alloc := Allocate(
		Tally{600: 1, 100: 1},
		[]CastingTally{{Name: "Secondary", Tally: Tally{600: 1, 100: 1}}},
		c,
	)

	require.Len(t, alloc.Castings, 1)
	assert.Equal(t, 2, alloc.Reused)
	assert.Equal(t, 0, alloc.New)
	assert.Equal(t, 2, alloc.Total)
	assert.Equal(t, Inventory{600: 1, 100: 1}, alloc.Baseline)

	lines := alloc.Castings[0].Lines
	require.Len(t, lines, 2)
	assert.Equal(t, model.WidthAllocation{Size: 100, Type: model.PanelStandard, Required: 1, Reused: 1}, lines[0])
	assert.Equal(t, model.WidthAllocation{Size: 600, Type: model.PanelStandard, Required: 1, Reused: 1}, lines[1])
	assert.Empty(t, alloc.Castings[0].Inventory)
}

func TestAllocate_ShortfallIsBoughtNew(t *testing.T) {
	c := testCatalog(t)
	alloc := Allocate(
		Tally{600: 1},
		[]CastingTally{{Name: "B", Tally: Tally{600: 3, 50: 1}}},
		c,
	)

	lines := alloc.Castings[0].Lines
	require.Len(t, lines, 2)
	assert.Equal(t, model.WidthAllocation{Size: 50, Type: model.PanelCustom, Required: 1, New: 1}, lines[0])
	assert.Equal(t, model.WidthAllocation{Size: 600, Type: model.PanelStandard, Required: 3, Reused: 1, New: 2}, lines[1])
	assert.Equal(t, 1, alloc.Reused)
	assert.Equal(t, 3, alloc.New)
	assert.Equal(t, 4, alloc.Total)
}

// Panels bought for one secondary casting enter the pool and are reused by
// a later secondary. Reuse is tracked in strict processing order, so the
// third casting reuses stock that was never part of the primary.
func TestAllocate_ReuseFlowsBetweenSecondaries(t *testing.T) {
	c := testCatalog(t)
	alloc := Allocate(
		Tally{600: 1},
		[]CastingTally{
			{Name: "B", Tally: Tally{600: 1, 300: 2}},
			{Name: "C", Tally: Tally{300: 2}},
		},
		c,
	)

	require.Len(t, alloc.Castings, 2)
	b, cc := alloc.Castings[0], alloc.Castings[1]

	assert.Equal(t, 1, b.Reused())
	assert.Equal(t, 2, b.New())
	assert.Equal(t, Inventory{300: 2}, b.Inventory)

	assert.Equal(t, 2, cc.Reused(), "C reuses the 300s bought for B")
	assert.Equal(t, 0, cc.New())
}

func TestAllocate_OrderMatters(t *testing.T) {
	c := testCatalog(t)
	primary := Tally{100: 1}
	b := CastingTally{Name: "B", Tally: Tally{500: 1}}
	cc := CastingTally{Name: "C", Tally: Tally{500: 2}}

	bc := Allocate(primary, []CastingTally{b, cc}, c)
	cb := Allocate(primary, []CastingTally{cc, b}, c)

	// B first: B buys one 500, C reuses it and buys one more.
	assert.Equal(t, 1, bc.Castings[0].New())
	assert.Equal(t, 1, bc.Castings[1].Reused())
	assert.Equal(t, 1, bc.Castings[1].New())

	// C first: C buys both, B reuses one of them.
	assert.Equal(t, 2, cb.Castings[0].New())
	assert.Equal(t, 1, cb.Castings[1].Reused())
	assert.Equal(t, 0, cb.Castings[1].New())
}

func TestAllocate_ReuseConservation(t *testing.T) {
	c := testCatalog(t)
	alloc := Allocate(
		Tally{600: 4, 200: 1, 50: 2},
		[]CastingTally{
			{Name: "B", Tally: Tally{600: 6, 50: 1, 30: 1}},
			{Name: "C", Tally: Tally{600: 1, 200: 3, 30: 2}},
			{Name: "D", Tally: Tally{}},
		},
		c,
	)

	reused, fresh, total := 0, 0, 0
	for _, ca := range alloc.Castings {
		for _, l := range ca.Lines {
			assert.Equal(t, l.Required, l.Reused+l.New, "%s width %d", ca.Casting, l.Size)
			reused += l.Reused
			fresh += l.New
			total += l.Required
		}
	}
	assert.Equal(t, alloc.Reused, reused)
	assert.Equal(t, alloc.New, fresh)
	assert.Equal(t, alloc.Total, total)
	assert.Equal(t, alloc.Total, alloc.Reused+alloc.New)
	assert.Empty(t, alloc.Castings[2].Lines)
}

func TestAllocate_NoSecondaries(t *testing.T) {
	alloc := Allocate(Tally{600: 1}, nil, testCatalog(t))
	assert.Empty(t, alloc.Castings)
	assert.Zero(t, alloc.Total)
}
