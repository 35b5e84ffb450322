// Package ingest loads the three source exports (opportunities, deployment
// cases, support cases) from Excel workbooks into model records. Column
// headers are matched fuzzily so renamed exports keep loading.
package ingest

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions configures the workbook reader.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads a workbook and returns all rows as string slices, the header
// row included. The path may contain a glob pattern; the first match (sorted)
// is used.
func ReadXLSX(path string, opts XLSXOptions) ([][]string, error) {
	path, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open workbook")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		rows = append(rows, rowToStrings(row))
	}
	return rows, nil
}

func resolvePath(path string) (string, error) {
	if !strings.ContainsAny(path, "*?[") {
		return path, nil
	}
	matches, err := filepath.Glob(path)
	if err != nil {
		return "", eris.Wrap(err, "ingest: bad glob pattern")
	}
	if len(matches) == 0 {
		return "", eris.Errorf("ingest: no files matching %q", path)
	}
	sort.Strings(matches)
	return matches[0], nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("ingest: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("ingest: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
