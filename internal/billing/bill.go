package billing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/renameio/v2"

	"github.com/kisankhidmat/khidmat/internal/models"
)

// Layout positions lines on a page, in points measured from the bottom edge.
type Layout struct {
	HeaderY      int
	FirstRowY    int
	LinePitch    int
	BottomMargin int
}

// DefaultLayout matches an A4 page: header at 800, rows from 770 every 20 points.
var DefaultLayout = Layout{
	HeaderY:      800,
	FirstRowY:    770,
	LinePitch:    20,
	BottomMargin: 40,
}

// rowsPerPage is how many rows fit between FirstRowY and BottomMargin.
func (l Layout) rowsPerPage() int {
	if l.LinePitch <= 0 || l.FirstRowY < l.BottomMargin {
		return 1
	}
	return (l.FirstRowY-l.BottomMargin)/l.LinePitch + 1
}

// Line is a positioned line of text.
type Line struct {
	Y    int
	Text string
}

// Page is one page of a bill.
type Page struct {
	Lines []Line
}

// Document is a rendered bill.
type Document struct {
	Phone string
	Pages []Page

	// Rows is the number of transaction lines on the bill.
	Rows int
}

// FileName is the name the document is written and downloaded under.
func (d *Document) FileName() string {
	return d.Phone + "_bill.txt"
}

// Bytes renders the document as plain text, pages separated by form feeds.
func (d *Document) Bytes() []byte {
	var b strings.Builder
	for i, p := range d.Pages {
		if i > 0 {
			b.WriteString("\f\n")
		}
		for _, l := range p.Lines {
			b.WriteString(l.Text)
			b.WriteByte('\n')
		}
	}
	return []byte(b.String())
}

// FormatRow renders a transaction as "date | item | ₹amount | Paid: ₹paid".
// Control characters in the item become spaces so a row is always one line.
func FormatRow(t models.Transaction) string {
	return fmt.Sprintf("%s | %s | ₹%s | Paid: ₹%s",
		t.Date.Format(models.DateLayout), singleLine(t.Item), t.Amount.String(), t.Paid.String())
}

func singleLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// RenderBill lays out a bill for phone using DefaultLayout.
func RenderBill(shop, phone string, entries []models.Transaction) *Document {
	return RenderBillWithLayout(DefaultLayout, shop, phone, entries)
}

// RenderBillWithLayout lays out a header naming the shop and phone, then one line per
// transaction moving down by the line pitch, then the outstanding due. A line that
// would fall below the bottom margin starts a new page with a continued header.
func RenderBillWithLayout(layout Layout, shop, phone string, entries []models.Transaction) *Document {
	header := fmt.Sprintf("%s - Bill for %s", shop, phone)
	doc := &Document{Phone: phone, Rows: len(entries)}

	newPage := func() {
		text := header
		if len(doc.Pages) > 0 {
			text += " (continued)"
		}
		doc.Pages = append(doc.Pages, Page{Lines: []Line{{Y: layout.HeaderY, Text: text}}})
	}

	newPage()
	y := layout.FirstRowY
	perPage := layout.rowsPerPage()
	onPage := 0
	emit := func(text string) {
		if onPage == perPage {
			newPage()
			y = layout.FirstRowY
			onPage = 0
		}
		page := &doc.Pages[len(doc.Pages)-1]
		page.Lines = append(page.Lines, Line{Y: y, Text: text})
		y -= layout.LinePitch
		onPage++
	}

	for _, e := range entries {
		emit(FormatRow(e))
	}
	emit(fmt.Sprintf("Outstanding due: ₹%s", TotalDue(entries).String()))
	return doc
}

// WriteBill writes doc into dir and returns the path of the file.
func WriteBill(dir string, doc *Document) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create bill directory: %w", err)
	}
	path := filepath.Join(dir, doc.FileName())
	if err := renameio.WriteFile(path, doc.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write bill: %w", err)
	}
	return path, nil
}
