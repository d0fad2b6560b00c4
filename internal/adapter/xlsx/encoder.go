// Package xlsx writes the tables of a layout document into an Excel workbook.
// It serves site list exports, which office staff filter and sort.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/couchcryptid/field-survey-reports/internal/layout"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName   = "Fiches"
	headerRow   = 3
	columnWidth = 24.0
)

var errNoTable = errors.New("document has no table")

// Encoder converts a list document into a single-sheet workbook: the document
// title, then every table row with the header row styled and frozen.
type Encoder struct {
	created time.Time
}

// NewEncoder creates an Encoder. A non-zero created time is written to the
// workbook properties.
func NewEncoder(created time.Time) *Encoder {
	return &Encoder{created: created}
}

func (e *Encoder) Extension() string { return "xlsx" }
func (e *Encoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Encode writes the workbook to w.
func (e *Encoder) Encode(w io.Writer, doc layout.Document) error {
	rows := tableRows(doc)
	if len(rows) == 0 {
		return errNoTable
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if !e.created.IsZero() {
		stamp := e.created.UTC().Format(time.RFC3339)
		if err := f.SetDocProps(&excelize.DocProperties{Title: doc.Title, Created: stamp, Modified: stamp}); err != nil {
			return fmt.Errorf("set properties: %w", err)
		}
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetCellValue(sheetName, "A1", doc.Title); err != nil {
		return fmt.Errorf("write title: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", styles.title); err != nil {
		return fmt.Errorf("style title: %w", err)
	}
	if err := f.SetRowHeight(sheetName, 1, 24); err != nil {
		return fmt.Errorf("title height: %w", err)
	}

	cols := 0
	for i, row := range rows {
		r := headerRow + i
		style := styles.data
		if row.Header {
			style = styles.header
		}
		for c, v := range row.Values {
			cell, err := excelize.CoordinatesToCellName(c+1, r)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(sheetName, cell, v); err != nil {
				return fmt.Errorf("write %s: %w", cell, err)
			}
			if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
				return fmt.Errorf("style %s: %w", cell, err)
			}
		}
		cols = max(cols, len(row.Values))
	}

	last, err := excelize.ColumnNumberToName(max(cols, 1))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "A", last, columnWidth); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if rows[0].Header {
		if err := f.SetPanes(sheetName, &excelize.Panes{
			Freeze:      true,
			YSplit:      headerRow,
			TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("freeze header: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// tableRows flattens every table of the document. Header rows repeated on
// continuation pages are dropped.
func tableRows(doc layout.Document) []layout.TableRow {
	var out []layout.TableRow
	seenHeader := false
	for _, t := range doc.Tables() {
		for _, row := range t.Rows {
			if row.Header {
				if seenHeader {
					continue
				}
				seenHeader = true
			}
			out = append(out, row)
		}
	}
	return out
}

type styles struct {
	title, header, data int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return s, fmt.Errorf("title style: %w", err)
	}
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#34519E"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    border("000000"),
	})
	if err != nil {
		return s, fmt.Errorf("header style: %w", err)
	}
	s.data, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    border("CCCCCC"),
	})
	if err != nil {
		return s, fmt.Errorf("data style: %w", err)
	}
	return s, nil
}

func border(color string) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
		{Type: "top", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
	}
}
