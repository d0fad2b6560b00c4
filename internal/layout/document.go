// Package layout builds paginated documents as lists of positioned draw
// instructions. Units are millimetres on an A4 portrait page with the origin
// at the top-left corner of each page.
package layout

// A4 page geometry in millimetres.
const (
	PageWidth    = 210.0
	PageHeight   = 297.0
	Margin       = 10.0
	TopMargin    = 20.0
	BottomMargin = 15.0
)

// Color is an RGB fill or text colour.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Instruction is one draw operation on a page.
type Instruction interface {
	instruction()
}

// Text places a single line with its baseline at Y.
type Text struct {
	X, Y    float64
	Content string
	Size    float64
	Bold    bool
}

// Table is a ruled grid. Cell text is already wrapped into lines and every
// row carries its computed height, so renderers only draw.
type Table struct {
	X, Y   float64
	Widths []float64
	Rows   []TableRow
	Style  TableStyle
}

// TableRow is one row of a Table.
type TableRow struct {
	Cells  [][]string
	Values []string // unwrapped cell contents
	Height float64
	Header bool
}

// Height returns the total height of the table.
func (t Table) Height() float64 {
	h := 0.0
	for _, r := range t.Rows {
		h += r.Height
	}
	return h
}

// Image is a raster image scaled into a bounding box.
type Image struct {
	X, Y, W, H float64
	Ref        string
	Data       []byte
	Format     string // JPEG or PNG
}

func (Text) instruction()  {}
func (Table) instruction() {}
func (Image) instruction() {}

// Page is the ordered instruction list of one page.
type Page struct {
	Instructions []Instruction
}

// Document is a finished, read-only page sequence.
type Document struct {
	Title string
	Pages []Page
}

// PageCount returns the number of pages.
func (d Document) PageCount() int {
	return len(d.Pages)
}

// Texts returns the content of every text instruction and table cell line,
// in page order. Used by plain-text sinks and tests.
func (d Document) Texts() []string {
	var out []string
	for _, p := range d.Pages {
		for _, ins := range p.Instructions {
			switch v := ins.(type) {
			case Text:
				out = append(out, v.Content)
			case Table:
				for _, row := range v.Rows {
					for _, cell := range row.Cells {
						out = append(out, cell...)
					}
				}
			}
		}
	}
	return out
}

// Tables returns every table instruction in page order.
func (d Document) Tables() []Table {
	var out []Table
	for _, p := range d.Pages {
		for _, ins := range p.Instructions {
			if t, ok := ins.(Table); ok {
				out = append(out, t)
			}
		}
	}
	return out
}

// Images returns every image instruction in page order.
func (d Document) Images() []Image {
	var out []Image
	for _, p := range d.Pages {
		for _, ins := range p.Instructions {
			if img, ok := ins.(Image); ok {
				out = append(out, img)
			}
		}
	}
	return out
}
