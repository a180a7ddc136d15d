// Package importer provides CSV and Excel bulk import of custom
// ingredients. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jfaundez/bakecalc/internal/model"
)

// ImportResult holds the outcome of an import operation. Row-level
// problems are collected rather than aborting the whole import.
type ImportResult struct {
	Ingredients []model.IngredientDefinition // IDs unassigned; the catalog assigns them on insert
	Errors      []string
	Warnings    []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name         int
	UnitPrice    int
	ReferenceQty int
	Unit         int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":          {"name", "ingredient", "product", "item", "label"},
	"unit_price":    {"price", "unit price", "unitprice", "cost"},
	"reference_qty": {"reference quantity", "reference qty", "ref qty", "refqty", "quantity", "qty"},
	"unit":          {"unit", "units", "measure", "uom"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe; the delimiter
// producing the most consistent multi-column row shape wins.
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

// DetectColumns examines a header row and returns a ColumnMapping. It
// performs case-insensitive matching against known aliases for each column
// role. Returns the mapping and true if a header was detected, or a
// default positional mapping (name, price, reference qty, unit) and false
// if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, UnitPrice: -1, ReferenceQty: -1, Unit: -1}

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
				case "name":
					if mapping.Name == -1 {
						mapping.Name = i
					}
				case "unit_price":
					if mapping.UnitPrice == -1 {
						mapping.UnitPrice = i
					}
				case "reference_qty":
					if mapping.ReferenceQty == -1 {
						mapping.ReferenceQty = i
					}
				case "unit":
					if mapping.Unit == -1 {
						mapping.Unit = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Name: 0, UnitPrice: 1, ReferenceQty: 2, Unit: 3}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts an ingredient definition from a row using the given
// column mapping. Returns the definition and any error or warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.IngredientDefinition, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		return model.IngredientDefinition{}, fmt.Sprintf("%s: Missing ingredient name", rowLabel), ""
	}

	priceStr := getCell(row, mapping.UnitPrice)
	if priceStr == "" {
		return model.IngredientDefinition{}, fmt.Sprintf("%s: Missing price value", rowLabel), ""
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return model.IngredientDefinition{}, fmt.Sprintf("%s: Invalid price '%s'", rowLabel, priceStr), ""
	}

	refStr := getCell(row, mapping.ReferenceQty)
	if refStr == "" {
		return model.IngredientDefinition{}, fmt.Sprintf("%s: Missing reference quantity", rowLabel), ""
	}
	refQty, err := strconv.ParseFloat(refStr, 64)
	if err != nil {
		return model.IngredientDefinition{}, fmt.Sprintf("%s: Invalid reference quantity '%s'", rowLabel, refStr), ""
	}

	if price <= 0 || refQty <= 0 {
		return model.IngredientDefinition{}, fmt.Sprintf("%s: Price and reference quantity must be positive", rowLabel), ""
	}

	var warning string
	unit := getCell(row, mapping.Unit)
	if unit == "" {
		unit = "g"
		warning = fmt.Sprintf("%s: Missing unit, defaulting to 'g'", rowLabel)
	}

	def := model.IngredientDefinition{
		Name:         name,
		UnitPrice:    price,
		ReferenceQty: refQty,
		Unit:         unit,
	}
	return def, "", warning
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

// ImportCSV imports custom ingredients from a CSV file. It automatically
// detects the delimiter and maps columns by header names.
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

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports custom ingredients from a CSV reader with a
// known delimiter.
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

// ImportExcel imports custom ingredients from an Excel (.xlsx) file.
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

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Name == -1 {
			missing = append(missing, "Name")
		}
		if mapping.UnitPrice == -1 {
			missing = append(missing, "Price")
		}
		if mapping.ReferenceQty == -1 {
			missing = append(missing, "Reference quantity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// No recognized header: when the price column of the first row is
		// not numeric, treat it as an unknown header and skip it.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
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
		def, errMsg, warning := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Ingredients = append(result.Ingredients, def)
	}

	return result
}
