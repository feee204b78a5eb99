package export

import (
	"fmt"
	"time"

	"amigo-admin/pkg/utils"

	"github.com/xuri/excelize/v2"
)

type Column struct {
	Key    string
	Header string
	Width  float64
}

// ToExcel renders rows as a single-sheet workbook and returns the bytes
// with a dated download filename
func ToExcel(sheetName string, columns []Column, rows []map[string]any, now time.Time) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, "", err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col.Header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		width := col.Width
		if width == 0 {
			width = 18
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, name, name, width)
	}

	for rowIdx, record := range rows {
		for colIdx, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, cellValue(record[col.Key]))
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s-%s.xlsx", utils.Slugify(sheetName), now.Format("2006-01-02"))
	return buffer.Bytes(), filename, nil
}

func cellValue(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02 15:04:05")
	case *time.Time:
		if val == nil || val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02 15:04:05")
	case []string:
		s := ""
		for i, item := range val {
			if i > 0 {
				s += ", "
			}
			s += item
		}
		return s
	case bool, string, int, int64, float64:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
