// Package importer loads word catalogs from spreadsheets into the database.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Columns in their default order. A header row naming them may reorder them.
var columns = []string{
	"category", "subcategory", "word_kr", "meaning_zh", "pos", "example_kr", "example_zh",
}

var ErrUnsupportedFormat = errors.New("unsupported file format")

// Row is one catalog line of an import file.
type Row struct {
	Line         int // 1-based line in the source file
	Category     string
	Subcategory  string
	SurfaceForm  string
	Gloss        string
	PartOfSpeech string
	ExampleKR    string
	ExampleZH    string
}

// Validate reports the first missing required field.
func (r Row) Validate() error {
	switch {
	case r.Category == "":
		return errors.New("category is empty")
	case r.Subcategory == "":
		return errors.New("subcategory is empty")
	case r.SurfaceForm == "":
		return errors.New("word_kr is empty")
	case r.Gloss == "":
		return errors.New("meaning_zh is empty")
	}
	return nil
}

// ReadFile reads rows from an .xlsx or .csv file. sheet selects the
// worksheet of a workbook; empty means the first one.
func ReadFile(path, sheet string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return ReadXLSX(f, sheet)
	case ".csv":
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ReadXLSX reads rows from a workbook.
func ReadXLSX(r io.Reader, sheet string) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	return parseRecords(records), nil
}

// ReadCSV reads rows from comma separated text.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return parseRecords(records), nil
}

func parseRecords(records [][]string) []Row {
	index := defaultIndex()
	start := 0
	if len(records) > 0 {
		if header, ok := headerIndex(records[0]); ok {
			index = header
			start = 1
		}
	}

	rows := make([]Row, 0, len(records)-start)
	for i := start; i < len(records); i++ {
		rec := records[i]
		if isBlank(rec) {
			continue
		}

		get := func(name string) string {
			j, ok := index[name]
			if !ok || j >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[j])
		}

		rows = append(rows, Row{
			Line:         i + 1,
			Category:     get("category"),
			Subcategory:  get("subcategory"),
			SurfaceForm:  get("word_kr"),
			Gloss:        get("meaning_zh"),
			PartOfSpeech: get("pos"),
			ExampleKR:    get("example_kr"),
			ExampleZH:    get("example_zh"),
		})
	}

	return rows
}

func defaultIndex() map[string]int {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return index
}

// headerIndex maps column names of a header row. A row is a header when it
// names the word_kr column.
func headerIndex(rec []string) (map[string]int, bool) {
	index := make(map[string]int, len(rec))
	for i, cell := range rec {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff")))
		index[name] = i
	}
	if _, ok := index["word_kr"]; !ok {
		return nil, false
	}
	return index, true
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
