// Package pdf draws layout documents into PDF files with fpdf.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/couchcryptid/field-survey-reports/internal/layout"
	"github.com/go-pdf/fpdf"
)

const (
	fontFamily = "Helvetica"
	ptToMM     = 0.3528
)

// Encoder renders documents as A4 portrait PDFs. Core fonts are used with a
// cp1252 translation, which covers French text.
type Encoder struct {
	creator string
	created time.Time
}

// NewEncoder creates an Encoder. A non-zero created time is stamped into
// every file, which makes the output byte-stable.
func NewEncoder(creator string, created time.Time) *Encoder {
	return &Encoder{creator: creator, created: created}
}

func (e *Encoder) Extension() string   { return "pdf" }
func (e *Encoder) ContentType() string { return "application/pdf" }

// Encode writes doc to w.
func (e *Encoder) Encode(w io.Writer, doc layout.Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(layout.Margin, layout.TopMargin, layout.Margin)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(doc.Title, true)
	if e.creator != "" {
		pdf.SetCreator(e.creator, true)
	}
	if !e.created.IsZero() {
		pdf.SetCreationDate(e.created)
		pdf.SetModificationDate(e.created)
	}

	d := &drawer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	for pi, page := range doc.Pages {
		pdf.AddPage()
		for ii, ins := range page.Instructions {
			switch v := ins.(type) {
			case layout.Text:
				d.text(v)
			case layout.Table:
				d.table(v)
			case layout.Image:
				d.image(v, fmt.Sprintf("p%d-i%d", pi, ii))
			}
		}
		if pdf.Err() {
			return fmt.Errorf("draw page %d: %w", pi+1, pdf.Error())
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

type drawer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (d *drawer) font(size float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	if size == 0 {
		size = layout.DefaultFontSize
	}
	d.pdf.SetFont(fontFamily, style, size)
}

func (d *drawer) text(t layout.Text) {
	d.font(t.Size, t.Bold)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.Text(t.X, t.Y, d.tr(t.Content))
}

func (d *drawer) table(t layout.Table) {
	st := t.Style
	size := st.FontSize
	if size == 0 {
		size = layout.DefaultTableStyle().FontSize
	}
	lh := layout.LineHeight(size)
	ascent := size * ptToMM

	d.pdf.SetLineWidth(0.1)
	d.pdf.SetDrawColor(int(st.LineColor.R), int(st.LineColor.G), int(st.LineColor.B))

	y := t.Y
	for _, row := range t.Rows {
		x := t.X
		for ci, w := range t.Widths {
			if row.Header {
				d.pdf.SetFillColor(int(st.HeadFill.R), int(st.HeadFill.G), int(st.HeadFill.B))
				d.pdf.Rect(x, y, w, row.Height, "FD")
				d.pdf.SetTextColor(int(st.HeadText.R), int(st.HeadText.G), int(st.HeadText.B))
			} else {
				d.pdf.Rect(x, y, w, row.Height, "D")
				d.pdf.SetTextColor(0, 0, 0)
			}
			d.font(size, row.Header)
			if ci < len(row.Cells) {
				for li, line := range row.Cells[ci] {
					d.pdf.Text(x+st.CellPadding, y+st.CellPadding+float64(li)*lh+ascent, d.tr(line))
				}
			}
			x += w
		}
		y += row.Height
	}
}

func (d *drawer) image(img layout.Image, name string) {
	imageType := "JPG"
	if img.Format == "PNG" {
		imageType = "PNG"
	}
	if d.pdf.Err() {
		return
	}
	opts := fpdf.ImageOptions{ImageType: imageType}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
	if d.pdf.Err() {
		// An unreadable image leaves its slot blank; the rest of the page
		// is still drawn.
		d.pdf.ClearError()
		return
	}
	d.pdf.ImageOptions(name, img.X, img.Y, img.W, img.H, false, opts, 0, "")
}
