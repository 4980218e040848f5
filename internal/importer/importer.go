// Package importer reads casting data from CSV, Excel, JSON and DXF files.
// Tabular sources support automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FormPanel/internal/engine"
	"github.com/piwi3910/FormPanel/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Castings []model.Casting
	Primary  string // Only set by formats that carry a primary selection
	Errors   []string
	Warnings []string
}

// Err folds the collected errors into one ErrInvalidInput error, or nil.
func (r ImportResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", engine.ErrInvalidInput, strings.Join(r.Errors, "; "))
}

// ColumnMapping maps semantic column roles to their indices in the data.
// Side is optional; without it sides keep their row order.
type ColumnMapping struct {
	Casting int
	Shape   int
	Side    int
	Length  int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"casting": {"casting", "casting name", "pour", "pour name", "level", "stage"},
	"shape":   {"shape", "shape name", "element", "member", "part"},
	"side":    {"side", "side no", "side number", "side #", "#", "no", "edge"},
	"length":  {"length", "len", "side length", "length (mm)", "length mm", "mm", "dimension"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or the positional
// mapping Casting, Shape, Side, Length and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Casting: -1, Shape: -1, Side: -1, Length: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "casting":
					if mapping.Casting == -1 {
						mapping.Casting = i
					}
				case "shape":
					if mapping.Shape == -1 {
						mapping.Shape = i
					}
				case "side":
					if mapping.Side == -1 {
						mapping.Side = i
					}
				case "length":
					if mapping.Length == -1 {
						mapping.Length = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Casting: 0, Shape: 1, Side: 2, Length: 3}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseLength accepts whole millimetres, including integral decimals such
// as "700.0" that spreadsheets produce.
func parseLength(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("not a number")
	}
	return wholeMillimetres(f)
}

// wholeMillimetres converts f to int, rejecting fractions and values outside
// the int range, whose conversion is platform dependent.
func wholeMillimetres(f float64) (int, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not a whole number of millimetres")
	}
	if f >= float64(math.MaxInt) || f <= float64(math.MinInt) {
		return 0, fmt.Errorf("%g mm is out of range", f)
	}
	return int(f), nil
}

// sideRow is one parsed data row before grouping.
type sideRow struct {
	casting string
	shape   string
	side    int // 0 when the source has no side column
	length  int
	label   string
}

// parseRow extracts one side from a row using the given column mapping.
// Returns the side and an error message if the row is unusable.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (sideRow, string) {
	sr := sideRow{
		casting: getCell(row, mapping.Casting),
		shape:   getCell(row, mapping.Shape),
		label:   rowLabel,
	}
	if sr.casting == "" {
		return sideRow{}, fmt.Sprintf("%s: Missing casting name", rowLabel)
	}
	if sr.shape == "" {
		return sideRow{}, fmt.Sprintf("%s: Missing shape name", rowLabel)
	}

	if mapping.Side >= 0 {
		sideStr := getCell(row, mapping.Side)
		if sideStr != "" {
			n, err := strconv.Atoi(sideStr)
			if err != nil || n <= 0 {
				return sideRow{}, fmt.Sprintf("%s: Invalid side number '%s'", rowLabel, sideStr)
			}
			sr.side = n
		}
	}

	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return sideRow{}, fmt.Sprintf("%s: Missing length value", rowLabel)
	}
	length, err := parseLength(lengthStr)
	if err != nil {
		return sideRow{}, fmt.Sprintf("%s: Invalid length '%s': %v", rowLabel, lengthStr, err)
	}
	if length <= 0 {
		return sideRow{}, fmt.Sprintf("%s: Length must be positive", rowLabel)
	}
	sr.length = length

	return sr, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports castings from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports castings from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports castings from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile picks the importer from the file extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return ImportCSV(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	case ".json":
		return ImportJSON(path)
	case ".dxf":
		return ImportDXF(path, "")
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type %q", filepath.Ext(path))}}
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, parses each row and groups the sides
// into castings and shapes in first-seen order.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Casting == -1 {
			missing = append(missing, "Casting")
		}
		if mapping.Shape == -1 {
			missing = append(missing, "Shape")
		}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		// An unrecognized header still has a non-numeric length cell.
		if _, err := parseLength(strings.TrimSpace(rows[0][mapping.Length])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	} else {
		// Three columns: Casting, Shape, Length with sides in row order.
		mapping = ColumnMapping{Casting: 0, Shape: 1, Side: -1, Length: 2}
	}

	var parsed []sideRow
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		sr, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		parsed = append(parsed, sr)
	}

	castings, errs := groupRows(parsed)
	result.Errors = append(result.Errors, errs...)
	if len(castings) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	result.Castings = castings
	return result
}

// groupRows builds castings and shapes in first-seen order. Within a shape,
// explicit side numbers order the sides; rows without one keep row order
// after the numbered sides.
func groupRows(rows []sideRow) ([]model.Casting, []string) {
	type shapeKey struct{ casting, shape string }

	var castingOrder []string
	shapeOrder := make(map[string][]string)
	sides := make(map[shapeKey][]sideRow)

	for _, r := range rows {
		if _, ok := shapeOrder[r.casting]; !ok {
			castingOrder = append(castingOrder, r.casting)
			shapeOrder[r.casting] = nil
		}
		k := shapeKey{r.casting, r.shape}
		if _, ok := sides[k]; !ok {
			shapeOrder[r.casting] = append(shapeOrder[r.casting], r.shape)
		}
		sides[k] = append(sides[k], r)
	}

	var errs []string
	castings := make([]model.Casting, 0, len(castingOrder))
	for _, cname := range castingOrder {
		c := model.NewCasting(cname)
		for _, sname := range shapeOrder[cname] {
			srs := sides[shapeKey{cname, sname}]
			sort.SliceStable(srs, func(i, j int) bool {
				a, b := srs[i].side, srs[j].side
				if a == 0 || b == 0 {
					return a != 0 && b == 0
				}
				return a < b
			})

			lengths := make([]int, 0, len(srs))
			seen := make(map[int]string)
			for _, sr := range srs {
				if sr.side > 0 {
					if prev, dup := seen[sr.side]; dup {
						errs = append(errs, fmt.Sprintf("%s: Duplicate side %d for %s / %s (first on %s)",
							sr.label, sr.side, cname, sname, prev))
						continue
					}
					seen[sr.side] = sr.label
				}
				lengths = append(lengths, sr.length)
			}
			c.AddShape(model.NewShape(sname, lengths...))
		}
		castings = append(castings, c)
	}
	return castings, errs
}
