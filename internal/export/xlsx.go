// Package export builds the spreadsheet representation of a catalog page.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tbeier/pokedex-web/pkg/catalog"
)

// Attachment constants shared by the download and email paths.
const (
	SheetName   = "Pokedex"
	Filename    = "pokedex.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headerRow = []string{"Name", "Species", "ImageUrl"}

// Workbook builds a single-sheet workbook with a header row and one data
// row per summary, in input order. Missing species or image values become
// empty cells.
func Workbook(items []catalog.Summary) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	if err := setRow(f, 1, headerRow); err != nil {
		return nil, err
	}

	for i, item := range items {
		row := []string{item.Name, item.SpeciesName, item.ImageURL}
		if err := setRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, items []catalog.Summary) error {
	f, err := Workbook(items)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell coordinates (%d,%d): %w", col+1, row, err)
		}
		if err := f.SetCellValue(SheetName, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
