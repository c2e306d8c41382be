// Package importer reads panel arrangements from CSV, Excel, DXF, JSON and
// TOML fixtures. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition. Problems are collected
// per row instead of aborting the whole import.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/panelgrid/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Regions  []model.Region
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A region needs left and top plus either right or width and either bottom
// or height.
type ColumnMapping struct {
	Label  int
	Left   int
	Top    int
	Right  int
	Bottom int
	Width  int
	Height int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":  {"label", "name", "panel", "region", "description", "desc", "id"},
	"left":   {"left", "l", "x", "x0"},
	"top":    {"top", "t", "y", "y0"},
	"right":  {"right", "r", "x1"},
	"bottom": {"bottom", "b", "y1"},
	"width":  {"width", "w", "width factor", "width_factor"},
	"height": {"height", "h", "height factor", "height_factor"},
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

		// Prefer delimiters with higher consistency and more columns
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
// mapping label, left, top, right, bottom and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Left: -1, Top: -1, Right: -1, Bottom: -1, Width: -1, Height: -1}
	slots := map[string]*int{
		"label":  &mapping.Label,
		"left":   &mapping.Left,
		"top":    &mapping.Top,
		"right":  &mapping.Right,
		"bottom": &mapping.Bottom,
		"width":  &mapping.Width,
		"height": &mapping.Height,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if slot := slots[role]; *slot == -1 {
						*slot = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Label: 0, Left: 1, Top: 2, Right: 3, Bottom: 4, Width: -1, Height: -1}, false
	}
	return mapping, true
}

// missingColumns lists the roles a header mapping lacks.
func (m ColumnMapping) missingColumns() []string {
	var missing []string
	if m.Left == -1 {
		missing = append(missing, "Left")
	}
	if m.Top == -1 {
		missing = append(missing, "Top")
	}
	if m.Right == -1 && m.Width == -1 {
		missing = append(missing, "Right or Width")
	}
	if m.Bottom == -1 && m.Height == -1 {
		missing = append(missing, "Bottom or Height")
	}
	return missing
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFactor(row []string, idx int, name, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return v, ""
}

// parseRow extracts a Region from a row using the given column mapping.
// Returns the region and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, regionCount int) (model.Region, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Panel %d", regionCount+1)
	}

	left, msg := parseFactor(row, mapping.Left, "left", rowLabel)
	if msg != "" {
		return model.Region{}, msg
	}
	top, msg := parseFactor(row, mapping.Top, "top", rowLabel)
	if msg != "" {
		return model.Region{}, msg
	}

	var width, height float64
	if mapping.Right != -1 {
		right, msg := parseFactor(row, mapping.Right, "right", rowLabel)
		if msg != "" {
			return model.Region{}, msg
		}
		width = right - left
	} else {
		if width, msg = parseFactor(row, mapping.Width, "width", rowLabel); msg != "" {
			return model.Region{}, msg
		}
	}
	if mapping.Bottom != -1 {
		bottom, msg := parseFactor(row, mapping.Bottom, "bottom", rowLabel)
		if msg != "" {
			return model.Region{}, msg
		}
		height = bottom - top
	} else {
		if height, msg = parseFactor(row, mapping.Height, "height", rowLabel); msg != "" {
			return model.Region{}, msg
		}
	}

	panel, err := model.NewPanel(model.Point{X: left, Y: top}, height, width)
	if err != nil {
		return model.Region{}, fmt.Sprintf("%s: %v", rowLabel, err)
	}
	return model.NewRegion(label, panel), ""
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

// ImportFile picks an importer from the file extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return ImportCSV(path)
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	case ".dxf":
		return ImportDXF(path)
	case ".json":
		return ImportJSON(path)
	case ".toml":
		return ImportTOML(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type '%s'", filepath.Ext(path))}}
	}
}

// ImportCSV imports regions from a CSV file.
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

// ImportCSVFromReader imports regions from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
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

// ImportExcel imports regions from an Excel (.xlsx) file.
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

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into regions.
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

		if missing := mapping.missingColumns(); len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 2 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			// Unrecognized header: skip it but keep positional mapping
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		region, errMsg := parseRow(row, mapping, rowLabel, len(result.Regions))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Regions = append(result.Regions, region)
	}

	return result
}
