// Package excel exports dashboard roll-ups as spreadsheets for offline
// distribution to stakeholders.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"pulseboard/models"
)

// ReportWriter renders department-performance roll-ups as an xlsx workbook
type ReportWriter struct{}

// NewReportWriter creates a report writer
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

const sheetName = "Department Performance"

// WriteDepartmentReport writes one row per department score to w
func (rw *ReportWriter) WriteDepartmentReport(w io.Writer, org *models.OrganizationScore) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Department", "Composite Score", "Status", "KPI Count", "Trend"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for row, score := range org.Departments {
		values := []interface{}{
			score.DepartmentName,
			score.Composite,
			score.Status,
			score.KPICount,
			score.Trend,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	summaryRow := len(org.Departments) + 3
	label, _ := excelize.CoordinatesToCellName(1, summaryRow)
	value, _ := excelize.CoordinatesToCellName(2, summaryRow)
	if err := f.SetCellValue(sheetName, label, periodLabel(org.Year, org.Quarter)); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, value, org.Composite); err != nil {
		return err
	}

	return f.Write(w)
}

func periodLabel(year, quarter int) string {
	if quarter > 0 {
		return fmt.Sprintf("Organization composite %d Q%d", year, quarter)
	}
	return fmt.Sprintf("Organization composite %d", year)
}
