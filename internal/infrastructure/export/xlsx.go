package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/doclens/internal/core/domain"
)

const glossarySheet = "Glossary"

var glossaryHeader = []any{"Term", "Translation", "Explanation", "Context", "Examples", "Confidence", "Category"}

// GlossaryXLSX renders one sheet with a bold header row; examples share a cell.
func GlossaryXLSX(terms []domain.KeyTerm) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", glossarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(glossarySheet, "A1", &glossaryHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(glossarySheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, term := range terms {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			term.Term,
			term.Translation,
			term.Explanation,
			term.Context,
			strings.Join(term.Examples, "\n"),
			term.Confidence,
			term.Category,
		}
		if err := f.SetSheetRow(glossarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(glossarySheet, "A", "B", 24); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(glossarySheet, "C", "E", 48); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
