package export

import (
	"testing"

	"github.com/piwi3910/FormPanel/internal/engine"
	"github.com/piwi3910/FormPanel/internal/model"
)

// buildTestResult runs the optimizer on two small castings.
// Level 1 is primary: 700 -> [600, 100], 650 -> [600, 50].
// Level 2 needs 700 -> [600, 100], 150 -> [100, 50], so one 100 mm
// panel is new and three panels are reused.
func buildTestResult(t *testing.T) model.Result {
	t.Helper()
	settings := model.DefaultSettings()
	settings.StandardWidths = []int{100, 200, 300, 400, 500, 600}
	opt, err := engine.New(settings)
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	res, err := opt.Run([]model.Casting{
		model.NewCasting("Level 1", model.NewShape("Core", 700, 650)),
		model.NewCasting("Level 2", model.NewShape("Core", 700, 150)),
	}, "Level 1")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return res
}

// buildManySidesResult builds a result large enough to span several pages.
func buildManySidesResult(t *testing.T) model.Result {
	t.Helper()
	settings := model.DefaultSettings()
	settings.StandardWidths = []int{300, 600, 900}
	opt, err := engine.New(settings)
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	var castings []model.Casting
	for c := 0; c < 3; c++ {
		casting := model.NewCasting("Pour " + string(rune('A'+c)))
		for s := 0; s < 8; s++ {
			casting.AddShape(model.NewShape("Wall "+string(rune('a'+s)), 1250+s*50, 2400, 1250+s*50, 2400))
		}
		castings = append(castings, casting)
	}
	res, err := opt.Run(castings, "Pour A")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return res
}
