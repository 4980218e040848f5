package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/FormPanel/internal/model"
)

// Optimizer runs the panel layout and reuse pipeline. Its fields are fixed at
// construction, so one Optimizer can serve concurrent Run calls; every run
// builds its own tallies and inventory.
type Optimizer struct {
	Settings model.Settings

	catalog    *Catalog
	decomposer Decomposer
	logger     *zap.Logger
}

// New builds an optimizer from settings. A bad catalog or unknown algorithm
// fails with ErrCatalogMisconfigured.
func New(settings model.Settings) (*Optimizer, error) {
	catalog, err := NewCatalog(settings.StandardWidths, settings.MinCustomWidth)
	if err != nil {
		return nil, err
	}
	d, err := NewDecomposer(settings.Algorithm, catalog)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogMisconfigured, err)
	}
	if settings.Algorithm == "" {
		settings.Algorithm = model.AlgorithmGreedy
	}
	settings.StandardWidths = catalog.Widths()
	return &Optimizer{
		Settings:   settings,
		catalog:    catalog,
		decomposer: d,
		logger:     zap.NewNop(),
	}, nil
}

// WithLogger returns a copy of o that logs pipeline stages to l.
func (o *Optimizer) WithLogger(l *zap.Logger) *Optimizer {
	cp := *o
	if l == nil {
		l = zap.NewNop()
	}
	cp.logger = l
	return &cp
}

// WithDecomposer returns a copy of o using d for side decomposition.
func (o *Optimizer) WithDecomposer(d Decomposer) *Optimizer {
	cp := *o
	cp.decomposer = d
	return &cp
}

// Catalog returns the optimizer's panel catalog.
func (o *Optimizer) Catalog() *Catalog {
	return o.catalog
}

// Run validates the input, processes the primary casting first and the rest
// in caller order, allocates reuse and aggregates statistics. It returns
// either a complete result or one classified error and never a partial result.
func (o *Optimizer) Run(castings []model.Casting, primary string) (model.Result, error) {
	if err := ValidateCastings(castings); err != nil {
		return model.Result{}, err
	}
	ordered, err := orderCastings(castings, primary)
	if err != nil {
		return model.Result{}, err
	}

	log := o.logger.With(zap.String("primary", primary))
	sides := 0
	for _, c := range ordered {
		sides += c.SideCount()
	}

	steps := []string{
		"Optimizing panel layouts...",
		fmt.Sprintf("Validated %d castings with %d sides (primary: %s)", len(ordered), sides, primary),
		fmt.Sprintf("Step 1/4: Decomposing sides against standard widths %v (%s)", o.catalog.Widths(), o.Settings.Algorithm),
	}

	layouts := make([]model.CastingLayout, len(ordered))
	tallies := make([]Tally, len(ordered))
	for i, c := range ordered {
		layouts[i], tallies[i] = ProcessCasting(c, o.decomposer)
		log.Debug("Decomposed casting",
			zap.String("casting", c.Name),
			zap.Int("sides", c.SideCount()),
			zap.Int("panels", tallies[i].Total()))
	}

	steps = append(steps, fmt.Sprintf("Step 2/4: Seeding panel pool with %d panels from primary casting %s",
		tallies[0].Total(), ordered[0].Name))

	secondaries := make([]CastingTally, 0, len(ordered)-1)
	for i := 1; i < len(ordered); i++ {
		secondaries = append(secondaries, CastingTally{Name: ordered[i].Name, Tally: tallies[i]})
	}

	steps = append(steps, fmt.Sprintf("Step 3/4: Allocating reuse across %d secondary castings", len(secondaries)))
	alloc := Allocate(tallies[0], secondaries, o.catalog)
	for i, ca := range alloc.Castings {
		layouts[i+1].Allocation = ca.Lines
		steps = append(steps, fmt.Sprintf("  %s: %d reused, %d new", ca.Casting, ca.Reused(), ca.New()))
		log.Debug("Allocated casting",
			zap.String("casting", ca.Casting),
			zap.Int("reused", ca.Reused()),
			zap.Int("new", ca.New()))
	}

	steps = append(steps, "Step 4/4: Aggregating panel statistics")
	stats := AggregateStats(tallies, o.catalog)
	reuse := BuildReuseAnalysis(alloc)
	steps = append(steps, fmt.Sprintf("Panel reuse efficiency: %.1f%% (%d of %d panels reused)",
		reuse.Efficiency.Percentage, reuse.Efficiency.ReusedPanels, reuse.Efficiency.TotalPanels))

	log.Info("Optimization complete",
		zap.Int("castings", len(ordered)),
		zap.Int("new_panels", reuse.Totals.TotalNew),
		zap.Float64("efficiency", reuse.Efficiency.Percentage))

	return model.Result{
		Steps: steps,
		Results: model.RunResults{
			PrimaryCasting: ordered[0].Name,
			Castings:       layouts,
			PanelStats:     stats,
			ReuseAnalysis:  reuse,
			Warnings:       o.customWidthWarnings(layouts),
		},
	}, nil
}

// customWidthWarnings flags custom panels narrower than the catalog's
// minimum custom width.
func (o *Optimizer) customWidthWarnings(layouts []model.CastingLayout) []string {
	minWidth := o.catalog.MinCustomWidth()
	if minWidth == 0 {
		return nil
	}
	var warnings []string
	for _, cl := range layouts {
		for _, sh := range cl.Shapes {
			for _, side := range sh.Sides {
				if len(side.Panels) == 0 {
					continue
				}
				last := side.Panels[len(side.Panels)-1]
				if !o.catalog.IsStandard(last) && last < minWidth {
					warnings = append(warnings, fmt.Sprintf(
						"casting %s, shape %s, side %d: custom panel %d mm is narrower than the %d mm minimum",
						cl.Name, sh.Name, side.Number, last, minWidth))
				}
			}
		}
	}
	return warnings
}

// ValidateCastings checks the structural rules of the input: at least one
// casting, unique casting names, every casting with shapes, unique shape
// names within a casting, every shape with sides and every side positive.
func ValidateCastings(castings []model.Casting) error {
	if len(castings) == 0 {
		return &InputError{Reason: "no castings supplied"}
	}
	names := make(map[string]bool, len(castings))
	for _, c := range castings {
		if c.Name == "" {
			return &InputError{Reason: "casting name is empty"}
		}
		if names[c.Name] {
			return &InputError{Casting: c.Name, Reason: "duplicate casting name"}
		}
		names[c.Name] = true

		if len(c.Shapes) == 0 {
			return &InputError{Casting: c.Name, Reason: "casting has no shapes"}
		}
		shapes := make(map[string]bool, len(c.Shapes))
		for _, s := range c.Shapes {
			if s.Name == "" {
				return &InputError{Casting: c.Name, Reason: "shape name is empty"}
			}
			if shapes[s.Name] {
				return &InputError{Casting: c.Name, Shape: s.Name, Reason: "duplicate shape name"}
			}
			shapes[s.Name] = true

			if len(s.Sides) == 0 {
				return &InputError{Casting: c.Name, Shape: s.Name, Reason: "shape has no sides"}
			}
			for i, l := range s.Sides {
				if l <= 0 {
					return &InputError{
						Casting: c.Name,
						Shape:   s.Name,
						Side:    i + 1,
						Reason:  fmt.Sprintf("side length %d must be positive", l),
					}
				}
			}
		}
	}
	return nil
}

// orderCastings returns copies of the castings with roles assigned, the
// primary first and the rest in caller order.
func orderCastings(castings []model.Casting, primary string) ([]model.Casting, error) {
	idx := -1
	for i, c := range castings {
		if c.Name == primary {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrimary, primary)
	}

	ordered := make([]model.Casting, 0, len(castings))
	p := castings[idx]
	p.Role = model.RolePrimary
	ordered = append(ordered, p)
	for i, c := range castings {
		if i == idx {
			continue
		}
		c.Role = model.RoleSecondary
		ordered = append(ordered, c)
	}
	return ordered, nil
}
