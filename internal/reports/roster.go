// Package reports builds exportable employee reports (CSV and XLSX) and
// delivers them through S3-compatible object storage.
package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"github.com/asnhub/asndash/internal/employees"
	"github.com/xuri/excelize/v2"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var rosterHeader = []string{"NIP", "Name", "Gender", "Rank", "Position", "Unit", "Type", "Status", "Hire Date"}

// rosterRows renders employees into string rows, resolving unit ids through
// unitNames (missing ids fall back to the raw id).
func rosterRows(list []*employees.Employee, unitNames map[string]string) [][]string {
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		unit := unitNames[e.UnitID]
		if unit == "" {
			unit = e.UnitID
		}
		rows = append(rows, []string{
			e.NIP,
			e.Name,
			e.Gender,
			e.Rank,
			e.Position,
			unit,
			e.EmploymentType,
			e.Status,
			e.HireDate.Format("2006-01-02"),
		})
	}
	return rows
}

// BuildRosterCSV renders the employee roster as CSV.
func BuildRosterCSV(list []*employees.Employee, unitNames map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(rosterHeader); err != nil {
		return nil, err
	}
	for _, row := range rosterRows(list, unitNames) {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildRosterXLSX renders the employee roster as an Excel workbook.
func BuildRosterXLSX(list []*employees.Employee, unitNames map[string]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Roster"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	writeRow := func(rowIdx int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(sheet, cell, &row)
	}

	if err := writeRow(1, rosterHeader); err != nil {
		return nil, err
	}
	for i, row := range rosterRows(list, unitNames) {
		if err := writeRow(i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildUnitSummaryCSV renders a per-unit headcount summary as CSV.
func BuildUnitSummaryCSV(counts map[string]int, unitNames map[string]string) ([]byte, error) {
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Unit", "Employees"}); err != nil {
		return nil, err
	}
	for _, id := range ids {
		name := unitNames[id]
		if name == "" {
			name = id
		}
		if err := w.Write([]string{name, fmt.Sprint(counts[id])}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// storageKey builds the object key for a generated report, partitioned by
// date the way report artifacts are laid out in the bucket.
func storageKey(now time.Time, id, format string) string {
	return fmt.Sprintf("reports/%d/%d/%d/%s.%s", now.Year(), now.Month(), now.Day(), id, format)
}
