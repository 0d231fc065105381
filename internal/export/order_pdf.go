// Package export composes downloadable order-summary documents. Layout is
// computed first as plain pages of text lines, then rendered to PDF, so the
// pagination rules stay independent of the PDF backend.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
)

// Vertical layout constants, in millimeters on an A4 page.
const (
	topMargin     = 20.0
	titleHeight   = 10.0
	headingHeight = 8.0
	lineHeight    = 7.0
	textHeight    = 6.0
	gapHeight     = 4.0

	// defaultPageBreakY is the cursor threshold past which item lines
	// spill onto a new page.
	defaultPageBreakY = 270.0
)

// Line is one rendered row of the summary.
type Line struct {
	Text   string
	Bold   bool
	Size   float64
	Height float64
}

// Layout is the paginated order summary before rendering.
type Layout struct {
	Pages [][]Line
}

// OrderPDF renders an order into a downloadable PDF document.
func OrderPDF(order *models.Order, now time.Time) ([]byte, error) {
	layout := LayoutOrder(order, defaultPageBreakY, now)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, topMargin, 15)
	pdf.SetAutoPageBreak(false, 0)

	for _, page := range layout.Pages {
		pdf.AddPage()
		for _, line := range page {
			style := ""
			if line.Bold {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, line.Size)
			pdf.CellFormat(0, line.Height, line.Text, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf generation failed: %w", err)
	}
	return buf.Bytes(), nil
}

// LayoutOrder paginates an order summary. Item lines that would push the
// vertical cursor past breakAt start a new page; header, shipping block,
// and the single trailing total follow the cursor the same way.
func LayoutOrder(order *models.Order, breakAt float64, now time.Time) *Layout {
	l := &Layout{}
	page := []Line{}
	y := topMargin

	emit := func(line Line) {
		if y+line.Height > breakAt {
			l.Pages = append(l.Pages, page)
			page = []Line{}
			y = topMargin
		}
		page = append(page, line)
		y += line.Height
	}

	emit(Line{Text: "Order Summary", Bold: true, Size: 16, Height: titleHeight})
	emit(Line{Text: "Order ID: " + order.ID, Size: 11, Height: lineHeight})
	emit(Line{Text: "Generated: " + now.Format(time.RFC1123), Size: 11, Height: lineHeight})
	emit(Line{Height: gapHeight})

	ship := order.ShippingDetails
	emit(Line{Text: "Shipping Information", Bold: true, Size: 12, Height: headingHeight})
	emit(Line{Text: fmt.Sprintf("Recipient: %s %s", ship.FirstName, ship.LastName), Size: 10, Height: textHeight})
	emit(Line{
		Text:   fmt.Sprintf("Address: %s, %s, %s, %s", ship.Address, ship.City, ship.PostalCode, ship.Country),
		Size:   10,
		Height: textHeight,
	})
	phone := ship.Phone
	if phone == "" {
		phone = "N/A"
	}
	emit(Line{Text: "Phone: " + phone, Size: 10, Height: textHeight})
	emit(Line{Height: gapHeight})

	emit(Line{Text: "Items", Bold: true, Size: 12, Height: headingHeight})
	for i, item := range order.Items {
		emit(Line{
			Text: fmt.Sprintf("%d. %s  -  Qty %d x %.2f  -  %s",
				i+1, item.Name, item.Quantity, item.Price, ColorName(item.Color)),
			Size:   10,
			Height: lineHeight,
		})
	}

	emit(Line{Height: gapHeight})
	emit(Line{
		Text:   fmt.Sprintf("Total: %.2f (%s)", order.TotalAmount, order.Status),
		Bold:   true,
		Size:   12,
		Height: headingHeight,
	})

	l.Pages = append(l.Pages, page)
	return l
}
