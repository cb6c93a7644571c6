package importer

import (
	"bytes"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// OpenRows opens an uploaded spreadsheet and returns its first sheet as raw
// rows, where rows[0] is spreadsheet row 1 regardless of reader. The modern
// zipped format is read with excelize; the legacy binary format with the xls
// reader, which indexes rows from 0; the offset is absorbed here so the
// template's 1-based start row applies uniformly downstream.
//
// Files named .xls are sometimes really the modern format, so a failed
// legacy open falls back to the modern reader. The legacy error is logged
// first; a corrupt legacy file then surfaces both errors instead of a
// misleading "not a zip" message.
func OpenRows(data []byte, filename, declaredFormat string) ([][]string, error) {
	format := declaredFormat
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	}

	switch format {
	case "xlsx":
		return readModern(data)
	case "xls":
		rows, legacyErr := readLegacy(data)
		if legacyErr == nil {
			return rows, nil
		}
		log.Printf("[Import] legacy reader failed for %s, trying modern format: %v", filename, legacyErr)
		rows, modernErr := readModern(data)
		if modernErr != nil {
			return nil, fmt.Errorf("cannot read %s as legacy (%v) or modern (%v) format", filename, legacyErr, modernErr)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unrecognized file format %q (expected xls or xlsx)", format)
	}
}

func readModern(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func readLegacy(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		// LastCol is the index past the last cell, per the BIFF record.
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
