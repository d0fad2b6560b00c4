package layout

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"
)

const (
	// ptToMM converts a font size in points to millimetres.
	ptToMM = 0.3528
	// avgGlyph is the average Helvetica glyph width as a fraction of the em.
	avgGlyph = 0.5
	// lineSpacing is the line height as a multiple of the font size.
	lineSpacing = 1.15

	DefaultFontSize = 10.0
)

var errNoImageLoader = errors.New("no image loader configured")

// ImageData is a decoded, embeddable raster image.
type ImageData struct {
	Data   []byte
	Format string // JPEG or PNG
}

// ImageLoader resolves a stored image reference to embeddable bytes.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (ImageData, error)
}

// TableStyle controls table geometry and colours.
type TableStyle struct {
	X            float64   // left edge, defaults to Margin
	ColumnWidths []float64 // defaults to equal split of the printable width
	FontSize     float64
	CellPadding  float64
	HeadFill     Color
	HeadText     Color
	LineColor    Color
}

// DefaultTableStyle is the grid theme of every report table.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		X:           Margin,
		FontSize:    8,
		CellPadding: 1.5,
		HeadFill:    Color{52, 81, 158},
		HeadText:    White,
		LineColor:   Color{200, 200, 200},
	}
}

// Builder accumulates draw instructions page by page. Positions are always
// explicit; only Table and Paragraph report where they ended.
//
// A Builder is not safe for concurrent use. Build one per document.
type Builder struct {
	images   ImageLoader
	logger   *slog.Logger
	title    string
	pages    []Page
	current  []Instruction
	fontSize float64
	bold     bool
	failures int
}

// NewBuilder starts a document with one empty page. images may be nil, in
// which case every image placement is skipped.
func NewBuilder(images ImageLoader, logger *slog.Logger) *Builder {
	return &Builder{
		images:   images,
		logger:   logger,
		fontSize: DefaultFontSize,
	}
}

// SetTitle sets the document title metadata.
func (b *Builder) SetTitle(title string) {
	b.title = title
}

// SetFont sets the size and weight of subsequent text.
func (b *Builder) SetFont(size float64, bold bool) {
	b.fontSize = size
	b.bold = bold
}

// Text places one line at (x, y).
func (b *Builder) Text(x, y float64, content string) {
	b.current = append(b.current, Text{X: x, Y: y, Content: content, Size: b.fontSize, Bold: b.bold})
}

// Paragraph wraps content to width and places the lines from y downward.
// It returns the baseline of the line after the last one.
func (b *Builder) Paragraph(x, y, width float64, content string) float64 {
	lh := LineHeight(b.fontSize)
	for _, line := range WrapText(content, width, b.fontSize) {
		b.Text(x, y, line)
		y += lh
	}
	return y
}

// Table places a grid with a filled header row at startY and returns the Y
// coordinate just below it. Rows that would cross the bottom margin move to
// a new page, where the header is repeated.
func (b *Builder) Table(startY float64, head []string, body [][]string, style TableStyle) float64 {
	if style.FontSize == 0 {
		style.FontSize = DefaultTableStyle().FontSize
	}
	if style.X == 0 {
		style.X = Margin
	}
	cols := len(head)
	if cols == 0 && len(body) > 0 {
		cols = len(body[0])
	}
	if cols == 0 {
		return startY
	}
	widths := columnWidths(style, cols)

	var headRow *TableRow
	if len(head) > 0 {
		r := b.tableRow(head, widths, style, true)
		headRow = &r
	}

	segment := Table{X: style.X, Y: startY, Widths: widths, Style: style}
	y := startY
	if headRow != nil {
		segment.Rows = append(segment.Rows, *headRow)
		y += headRow.Height
	}

	for _, cells := range body {
		row := b.tableRow(cells, widths, style, false)
		hasBody := len(segment.Rows) > headerRows(headRow)
		if y+row.Height > PageHeight-BottomMargin && (hasBody || segment.Y > TopMargin) {
			if hasBody {
				b.current = append(b.current, segment)
			}
			b.NewPage()
			y = TopMargin
			segment = Table{X: style.X, Y: y, Widths: widths, Style: style}
			if headRow != nil {
				segment.Rows = append(segment.Rows, *headRow)
				y += headRow.Height
			}
		}
		segment.Rows = append(segment.Rows, row)
		y += row.Height
	}

	b.current = append(b.current, segment)
	return y
}

// Image embeds the image behind ref in the box (x, y, w, h). When the
// reference cannot be resolved or fetched the failure is logged, nothing is
// placed and false is returned; the page is left intact.
func (b *Builder) Image(ctx context.Context, x, y float64, ref string, w, h float64) bool {
	err := errNoImageLoader
	var img ImageData
	if b.images != nil {
		img, err = b.images.Load(ctx, ref)
	}
	if err == nil && len(img.Data) == 0 {
		err = errors.New("empty image")
	}
	if err != nil {
		b.failures++
		b.logger.Warn("image skipped", "ref", ref, "error", err)
		return false
	}
	b.current = append(b.current, Image{X: x, Y: y, W: w, H: h, Ref: ref, Data: img.Data, Format: img.Format})
	return true
}

// NewPage closes the current page and starts an empty one.
func (b *Builder) NewPage() {
	b.pages = append(b.pages, Page{Instructions: b.current})
	b.current = nil
}

// PageCount returns the number of pages including the open one.
func (b *Builder) PageCount() int {
	return len(b.pages) + 1
}

// ImageFailures returns the number of images skipped so far.
func (b *Builder) ImageFailures() int {
	return b.failures
}

// Build returns the page sequence built so far. The result does not share
// page slices with the builder.
func (b *Builder) Build() Document {
	pages := make([]Page, 0, len(b.pages)+1)
	for _, p := range b.pages {
		pages = append(pages, Page{Instructions: append([]Instruction(nil), p.Instructions...)})
	}
	pages = append(pages, Page{Instructions: append([]Instruction(nil), b.current...)})
	return Document{Title: b.title, Pages: pages}
}

func (b *Builder) tableRow(cells []string, widths []float64, style TableStyle, header bool) TableRow {
	row := TableRow{Cells: make([][]string, len(widths)), Values: make([]string, len(widths)), Header: header}
	maxLines := 1
	for i := range widths {
		content := ""
		if i < len(cells) {
			content = cells[i]
		}
		row.Values[i] = strings.TrimSpace(content)
		lines := WrapText(content, widths[i]-2*style.CellPadding, style.FontSize)
		if len(lines) == 0 {
			lines = []string{""}
		}
		row.Cells[i] = lines
		maxLines = max(maxLines, len(lines))
	}
	row.Height = float64(maxLines)*LineHeight(style.FontSize) + 2*style.CellPadding
	return row
}

func headerRows(head *TableRow) int {
	if head == nil {
		return 0
	}
	return 1
}

func columnWidths(style TableStyle, cols int) []float64 {
	if len(style.ColumnWidths) == cols {
		return append([]float64(nil), style.ColumnWidths...)
	}
	total := PageWidth - style.X - Margin
	widths := make([]float64, cols)
	for i := range widths {
		widths[i] = total / float64(cols)
	}
	return widths
}

// LineHeight returns the distance between baselines at the given font size.
func LineHeight(size float64) float64 {
	return size * ptToMM * lineSpacing
}

// WrapText splits content into lines no wider than width at the given font
// size, breaking on spaces and on explicit newlines. Words longer than a
// line are cut.
func WrapText(content string, width, size float64) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	maxChars := int(width / (size * ptToMM * avgGlyph))
	if maxChars < 1 {
		maxChars = 1
	}

	var lines []string
	for _, para := range strings.Split(content, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, w := range words {
			for utf8.RuneCountInString(w) > maxChars {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				r := []rune(w)
				lines = append(lines, string(r[:maxChars]))
				w = string(r[maxChars:])
			}
			switch {
			case line == "":
				line = w
			case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) <= maxChars:
				line += " " + w
			default:
				lines = append(lines, line)
				line = w
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
