package productform

import (
	"context"
	"fmt"
	"strings"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
)

// Mode selects between authoring a new product and editing a stored one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// DefaultColor seeds a fresh create-mode form.
const DefaultColor = "#000000"

// categoryNames maps category ids onto the slugs the upstream expects in
// the submission payload.
var categoryNames = map[int]string{
	1: "watch",
	2: "earbud",
	3: "accessory",
}

// Scalars are the flat product fields owned by the form.
type Scalars struct {
	Name           string
	Tagline        string
	SKU            string
	Description    string
	Brand          string
	Price          float64
	CompareAtPrice float64
	CategoryID     int
	ComingSoon     bool
	IsActive       bool
}

// Form holds the in-memory state of a product being authored or edited:
// scalar fields, a banner slot, an ordered color set, and per-color stock
// and image-slot maps. The three variant structures are kept mutually
// consistent by construction: every active color has exactly one stock
// entry and one slot array, and nothing else does.
type Form struct {
	mode    Mode
	scalars Scalars
	banner  Slot
	colors  []string
	stock   map[string]int
	images  map[string][SlotsPerColor]Slot
}

// New returns a create-mode form seeded with the single default color.
func New() *Form {
	f := &Form{
		mode:   ModeCreate,
		banner: EmptySlot(),
		stock:  make(map[string]int),
		images: make(map[string][SlotsPerColor]Slot),
	}
	f.scalars.IsActive = true
	f.AddColor(DefaultColor)
	return f
}

// NewEdit returns an edit-mode form seeded from a stored product. Colors,
// stock, and image slots are derived from the product's variant records;
// the banner becomes an existing reference when present.
func NewEdit(p *models.Product) *Form {
	f := &Form{
		mode:   ModeEdit,
		banner: EmptySlot(),
		stock:  make(map[string]int),
		images: make(map[string][SlotsPerColor]Slot),
	}
	f.scalars = Scalars{
		Name:           p.Name,
		Tagline:        p.Tagline,
		SKU:            p.SKU,
		Description:    p.Description,
		Brand:          p.Brand,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		CategoryID:     p.CategoryID,
		ComingSoon:     p.ComingSoon,
		IsActive:       p.IsActive,
	}
	if p.Banner != "" {
		f.banner = ExistingRef(p.Banner)
	}
	for _, variant := range p.Images {
		color := "#" + strings.TrimPrefix(variant.Color, "#")
		f.AddColor(color)
		f.SetStock(color, variant.Stock)
		for i := 0; i < SlotsPerColor && i < len(variant.Images); i++ {
			if variant.Images[i] != "" {
				f.SetImage(color, i, ExistingRef(variant.Images[i]))
			}
		}
	}
	return f
}

// Mode returns the form mode.
func (f *Form) Mode() Mode { return f.mode }

// Scalars returns a copy of the scalar fields.
func (f *Form) Scalars() Scalars { return f.scalars }

// SetScalars replaces the scalar fields.
func (f *Form) SetScalars(s Scalars) { f.scalars = s }

// Colors returns the active color set in insertion order.
func (f *Form) Colors() []string {
	out := make([]string, len(f.colors))
	copy(out, f.colors)
	return out
}

// Stock returns the stock count for a color (0 for inactive colors).
func (f *Form) Stock(color string) int { return f.stock[color] }

// Images returns the slot array for a color. The second result is false
// when the color is not in the active set.
func (f *Form) Images(color string) ([SlotsPerColor]Slot, bool) {
	slots, ok := f.images[color]
	return slots, ok
}

// Banner returns the current banner slot.
func (f *Form) Banner() Slot { return f.banner }

// SetBanner replaces the banner slot.
func (f *Form) SetBanner(s Slot) { f.banner = s }

// TotalStock is the derived total: the sum over all per-color stock values.
// It is never set directly.
func (f *Form) TotalStock() int {
	total := 0
	for _, n := range f.stock {
		total += n
	}
	return total
}

// AddColor appends a color to the active set and initializes its stock and
// image slots. Empty and duplicate values are ignored.
func (f *Form) AddColor(color string) {
	if color == "" {
		return
	}
	if _, ok := f.images[color]; ok {
		return
	}
	f.colors = append(f.colors, color)
	f.stock[color] = 0
	f.images[color] = emptySlots()
}

// RemoveColor drops a color along with its stock entry and image slots.
// Other colors are untouched.
func (f *Form) RemoveColor(color string) {
	if _, ok := f.images[color]; !ok {
		return
	}
	for i, c := range f.colors {
		if c == color {
			f.colors = append(f.colors[:i], f.colors[i+1:]...)
			break
		}
	}
	delete(f.stock, color)
	delete(f.images, color)
}

// SetColors reconciles the active set to the given list: missing colors are
// added with fresh entries, removed colors are dropped with theirs.
func (f *Form) SetColors(colors []string) {
	keep := make(map[string]bool, len(colors))
	for _, c := range colors {
		keep[c] = true
		f.AddColor(c)
	}
	for _, c := range f.Colors() {
		if !keep[c] {
			f.RemoveColor(c)
		}
	}
	// preserve the caller's ordering
	ordered := make([]string, 0, len(colors))
	for _, c := range colors {
		if _, ok := f.images[c]; ok {
			ordered = append(ordered, c)
		}
	}
	f.colors = ordered
}

// SetImage replaces one slot for a color. Out-of-range indexes and colors
// outside the active set are ignored; validation reports them later.
func (f *Form) SetImage(color string, index int, slot Slot) {
	if index < 0 || index >= SlotsPerColor {
		return
	}
	slots, ok := f.images[color]
	if !ok {
		return
	}
	slots[index] = slot
	f.images[color] = slots
}

// SetStock stores a stock count for a color, clamping negatives to zero.
// Colors outside the active set are ignored.
func (f *Form) SetStock(color string, n int) {
	if _, ok := f.stock[color]; !ok {
		return
	}
	if n < 0 {
		n = 0
	}
	f.stock[color] = n
}

// Reset returns the form to its initial create-mode state: one default
// color with zero stock and empty slots, no banner, zeroed scalars.
func (f *Form) Reset() {
	f.scalars = Scalars{IsActive: true}
	f.banner = EmptySlot()
	f.colors = nil
	f.stock = make(map[string]int)
	f.images = make(map[string][SlotsPerColor]Slot)
	f.AddColor(DefaultColor)
}

// Submit validates, builds the payload, and invokes the submission callback.
// On success in create mode the form resets; edit mode and any failure leave
// state untouched.
func (f *Form) Submit(ctx context.Context, fn func(context.Context, *Payload) error) error {
	payload, err := f.BuildPayload()
	if err != nil {
		return err
	}
	if err := fn(ctx, payload); err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}
	if f.mode == ModeCreate {
		f.Reset()
	}
	return nil
}
