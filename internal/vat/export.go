package vat

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	reportSheet   = "Momsrapport"
	unmappedSheet = "Ej klassificerade"
)

// ExportXLSX writes the report as a spreadsheet: one row per box, box 49
// highlighted, and a second sheet listing accounts that fed no box.
func ExportXLSX(w io.Writer, report Report, period string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: 4,
		Border: []excelize.Border{
			{Type: "top", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	sw := &sheetWriter{f: f, sheet: reportSheet}
	sw.value("A1", "Momsrapport")
	sw.style("A1", "A1", titleStyle)
	sw.value("A2", "Period")
	sw.value("B2", period)

	for i, h := range []string{"Ruta", "Benämning", "Belopp"} {
		cell, err := excelize.CoordinatesToCellName(i+1, 4)
		if err != nil {
			return err
		}
		sw.value(cell, h)
		sw.style(cell, cell, headerStyle)
	}

	row := 5
	for _, e := range report.Entries {
		amount := fmt.Sprintf("C%d", row)
		sw.value(fmt.Sprintf("A%d", row), e.BoxCode)
		sw.value(fmt.Sprintf("B%d", row), e.Label)
		sw.amount(amount, e.Amount.StringFixed(2))
		style := amountStyle
		if e.BoxCode == Box49 {
			style = totalStyle
		}
		sw.style(amount, amount, style)
		row++
	}

	sw.width("A", 8)
	sw.width("B", 60)
	sw.width("C", 16)
	if sw.err != nil {
		return sw.err
	}

	if len(report.Unmapped) > 0 || len(report.Excluded) > 0 {
		if _, err := f.NewSheet(unmappedSheet); err != nil {
			return fmt.Errorf("creating sheet: %w", err)
		}
		sw = &sheetWriter{f: f, sheet: unmappedSheet}
		sw.value("A1", "Konto")
		sw.value("B1", "Status")
		sw.style("A1", "B1", headerStyle)
		r := 2
		for _, code := range report.Unmapped {
			sw.value(fmt.Sprintf("A%d", r), code)
			sw.value(fmt.Sprintf("B%d", r), Unmapped.String())
			r++
		}
		for _, code := range report.Excluded {
			sw.value(fmt.Sprintf("A%d", r), code)
			sw.value(fmt.Sprintf("B%d", r), Excluded.String())
			r++
		}
		if sw.err != nil {
			return sw.err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

// sheetWriter keeps the first error of a run of cell writes.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) value(cell string, v any) {
	if w.err == nil {
		if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
			w.err = fmt.Errorf("%s!%s: %w", w.sheet, cell, err)
		}
	}
}

// amount writes a fixed-point decimal string as a numeric cell, digit for
// digit.
func (w *sheetWriter) amount(cell, v string) {
	if w.err == nil {
		if err := w.f.SetCellDefault(w.sheet, cell, v); err != nil {
			w.err = fmt.Errorf("%s!%s: %w", w.sheet, cell, err)
		}
	}
}

func (w *sheetWriter) style(from, to string, style int) {
	if w.err == nil {
		if err := w.f.SetCellStyle(w.sheet, from, to, style); err != nil {
			w.err = fmt.Errorf("%s!%s:%s style: %w", w.sheet, from, to, err)
		}
	}
}

func (w *sheetWriter) width(col string, width float64) {
	if w.err == nil {
		if err := w.f.SetColWidth(w.sheet, col, col, width); err != nil {
			w.err = fmt.Errorf("%s column %s: %w", w.sheet, col, err)
		}
	}
}
