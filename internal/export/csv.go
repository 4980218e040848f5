package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piwi3910/FormPanel/internal/model"
)

var csvHeader = []string{"Casting", "Role", "Shape", "Side", "Length", "Panels", "Panel Count", "Custom Width"}

// WriteCSV writes one row per side with its panel widths joined by "+".
// Custom Width is empty when the side needs no custom panel.
func WriteCSV(w io.Writer, res model.Result) error {
	r := res.Results
	if len(r.Castings) == 0 {
		return fmt.Errorf("no castings to export")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, cl := range r.Castings {
		for _, sh := range cl.Shapes {
			for _, side := range sh.Sides {
				parts := make([]string, len(side.Panels))
				for i, p := range side.Panels {
					parts[i] = strconv.Itoa(p)
				}
				custom := ""
				if n := len(side.Panels); n > 0 && r.PanelStats.TypeOf(side.Panels[n-1]) == model.PanelCustom {
					custom = strconv.Itoa(side.Panels[n-1])
				}
				row := []string{
					cl.Name,
					string(cl.Type),
					sh.Name,
					strconv.Itoa(side.Number),
					strconv.Itoa(side.Length),
					strings.Join(parts, "+"),
					strconv.Itoa(len(side.Panels)),
					custom,
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the layout CSV to path.
func ExportCSV(path string, res model.Result) error {
	return writeFile(path, func(w io.Writer) error { return WriteCSV(w, res) })
}
