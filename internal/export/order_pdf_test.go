package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
)

func sampleOrder(itemCount int) *models.Order {
	order := &models.Order{
		ID:          "ord-123",
		TotalAmount: 499.50,
		Status:      models.OrderShipped,
		ShippingDetails: models.ShippingDetails{
			FirstName:  "Ayesha",
			LastName:   "Khan",
			Address:    "12 Canal Road",
			City:       "Lahore",
			PostalCode: "54000",
			Country:    "PK",
		},
	}
	for i := 0; i < itemCount; i++ {
		order.Items = append(order.Items, models.OrderLine{
			Name:     fmt.Sprintf("Item %d", i+1),
			Quantity: 1,
			Price:    9.99,
			Color:    "#FF0000",
		})
	}
	return order
}

func TestLayoutPaginatesItems(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	order := sampleOrder(25)

	// Preamble height: title + 2 header lines + gap, shipping heading +
	// 3 text lines + gap, items heading.
	preamble := topMargin + titleHeight + 2*lineHeight + gapHeight +
		headingHeight + 3*textHeight + gapHeight + headingHeight
	const breakAt = 200.0
	wantFirstPage := int((breakAt - preamble) / lineHeight)

	layout := LayoutOrder(order, breakAt, now)
	if len(layout.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(layout.Pages))
	}

	itemsOn := func(page []Line) int {
		n := 0
		for _, line := range page {
			if strings.Contains(line.Text, "Qty ") {
				n++
			}
		}
		return n
	}
	if got := itemsOn(layout.Pages[0]); got != wantFirstPage {
		t.Fatalf("items on page 1 = %d, want %d", got, wantFirstPage)
	}
	if got := itemsOn(layout.Pages[0]) + itemsOn(layout.Pages[1]); got != 25 {
		t.Fatalf("total item lines = %d, want 25", got)
	}

	// total appears exactly once, after all items
	totals := 0
	for _, page := range layout.Pages {
		for _, line := range page {
			if strings.HasPrefix(line.Text, "Total:") {
				totals++
			}
		}
	}
	if totals != 1 {
		t.Fatalf("total lines = %d, want 1", totals)
	}
	last := layout.Pages[len(layout.Pages)-1]
	for i := len(last) - 1; i >= 0; i-- {
		if last[i].Text == "" {
			continue
		}
		if !strings.HasPrefix(last[i].Text, "Total:") {
			t.Fatalf("last text line is %q, want the total", last[i].Text)
		}
		break
	}
}

func TestLayoutItemsStayOrdered(t *testing.T) {
	now := time.Now()
	layout := LayoutOrder(sampleOrder(40), 120, now)
	next := 1
	for _, page := range layout.Pages {
		for _, line := range page {
			if !strings.Contains(line.Text, "Qty ") {
				continue
			}
			want := fmt.Sprintf("%d. Item %d", next, next)
			if !strings.HasPrefix(line.Text, want) {
				t.Fatalf("line %q, want prefix %q", line.Text, want)
			}
			next++
		}
	}
	if next != 41 {
		t.Fatalf("saw %d items, want 40", next-1)
	}
}

func TestOrderPDFProducesDocument(t *testing.T) {
	data, err := OrderPDF(sampleOrder(3), time.Now())
	if err != nil {
		t.Fatalf("OrderPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF (starts %q)", data[:8])
	}
}

func TestColorName(t *testing.T) {
	cases := []struct {
		hex  string
		want string
	}{
		{"#FF0000", "Red"},
		{"FF0000", "Red"},
		{"#FE0102", "Red"},
		{"#000000", "Black"},
		{"#FFFFFF", "White"},
		{"", "Unknown"},
		{"#12", "Unknown"},
		{"#GGGGGG", "Unknown"},
	}
	for _, tc := range cases {
		if got := ColorName(tc.hex); got != tc.want {
			t.Errorf("ColorName(%q) = %q, want %q", tc.hex, got, tc.want)
		}
	}
}
