package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FormPanel/internal/model"
)

func TestComparePrimaries_OneResultPerCasting(t *testing.T) {
	opt := newTestOptimizer(t)
	castings := sampleCastings()

	results, err := ComparePrimaries(context.Background(), opt, castings, 2)
	require.NoError(t, err)
	require.Len(t, results, len(castings))

	for i, r := range results {
		assert.Equal(t, castings[i].Name, r.Primary)
		assert.Equal(t, r.Primary, r.Result.Results.PrimaryCasting)

		direct, err := opt.Run(castings, castings[i].Name)
		require.NoError(t, err)
		assert.Equal(t, direct, r.Result)
		assert.Equal(t, direct.Results.ReuseAnalysis.Totals.TotalNew, r.NewPanels)
		assert.Equal(t, model.CalculateProcurement(direct.Results).TotalPanels, r.TotalPanels)
	}
}

func TestComparePrimaries_UnlimitedWorkers(t *testing.T) {
	results, err := ComparePrimaries(context.Background(), newTestOptimizer(t), sampleCastings(), 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestComparePrimaries_InvalidInput(t *testing.T) {
	castings := []model.Casting{model.NewCasting("A", model.NewShape("S", -1))}
	_, err := ComparePrimaries(context.Background(), newTestOptimizer(t), castings, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComparePrimaries_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ComparePrimaries(ctx, newTestOptimizer(t), sampleCastings(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBestPrimary(t *testing.T) {
	assert.Equal(t, -1, BestPrimary(nil))

	results := []ComparisonResult{
		{Primary: "A", TotalPanels: 20, EfficiencyPct: 90},
		{Primary: "B", TotalPanels: 18, EfficiencyPct: 40},
		{Primary: "C", TotalPanels: 18, EfficiencyPct: 60},
		{Primary: "D", TotalPanels: 18, EfficiencyPct: 60},
	}
	assert.Equal(t, 2, BestPrimary(results), "fewest panels, then efficiency, then input order")
}

func TestBestPrimary_PrefersFullReuse(t *testing.T) {
	// Either choice buys three panels, but with Large as primary Small
	// reuses everything.
	castings := []model.Casting{
		model.NewCasting("Small", model.NewShape("S", 600)),
		model.NewCasting("Large", model.NewShape("L", 600, 600, 300)),
	}
	results, err := ComparePrimaries(context.Background(), newTestOptimizer(t), castings, 2)
	require.NoError(t, err)

	best := BestPrimary(results)
	require.GreaterOrEqual(t, best, 0)
	assert.Equal(t, "Large", results[best].Primary)
	assert.Equal(t, 3, results[best].TotalPanels)
	assert.Equal(t, 100.0, results[best].EfficiencyPct)
}
