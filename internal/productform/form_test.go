package productform

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
)

func filledForm() *Form {
	f := New()
	f.SetScalars(Scalars{Name: "Nova Watch", Price: 199, CategoryID: 1, IsActive: true})
	f.SetBanner(PendingUpload("banner.png", []byte("png")))
	for i := 0; i < SlotsPerColor; i++ {
		f.SetImage(DefaultColor, i, PendingUpload("img.png", []byte("img")))
	}
	return f
}

func assertConsistent(t *testing.T, f *Form) {
	t.Helper()
	colors := f.Colors()
	for _, c := range colors {
		if _, ok := f.Images(c); !ok {
			t.Fatalf("color %s has no image slots", c)
		}
	}
	// no orphaned keys: every map entry must belong to the color set
	seen := make(map[string]bool)
	for _, c := range colors {
		seen[c] = true
	}
	for c := range f.stock {
		if !seen[c] {
			t.Fatalf("orphaned stock entry for %s", c)
		}
	}
	for c := range f.images {
		if !seen[c] {
			t.Fatalf("orphaned image entry for %s", c)
		}
	}
	if len(f.stock) != len(colors) || len(f.images) != len(colors) {
		t.Fatalf("map sizes diverged: %d colors, %d stock, %d images",
			len(colors), len(f.stock), len(f.images))
	}
}

func TestAddRemoveColorKeepsMapsConsistent(t *testing.T) {
	f := New()
	ops := []struct {
		add   bool
		color string
	}{
		{true, "#FF0000"},
		{true, "#00FF00"},
		{true, "#FF0000"}, // duplicate, no-op
		{false, "#000000"},
		{true, ""}, // falsy, no-op
		{false, "#FF0000"},
		{true, "#0000FF"},
		{false, "#DOES-NOT-EXIST"},
	}
	for _, op := range ops {
		if op.add {
			f.AddColor(op.color)
		} else {
			f.RemoveColor(op.color)
		}
		assertConsistent(t, f)
	}
	want := []string{"#00FF00", "#0000FF"}
	got := f.Colors()
	if len(got) != len(want) {
		t.Fatalf("colors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("colors = %v, want %v", got, want)
		}
	}
}

func TestSetColorsReconciles(t *testing.T) {
	f := New()
	f.SetStock(DefaultColor, 3)
	f.SetColors([]string{"#000000", "#FF0000"})
	assertConsistent(t, f)
	if f.Stock(DefaultColor) != 3 {
		t.Fatalf("existing stock lost on reconcile: %d", f.Stock(DefaultColor))
	}
	f.SetColors([]string{"#FF0000"})
	assertConsistent(t, f)
	if f.Stock(DefaultColor) != 0 {
		t.Fatalf("removed color kept stock: %d", f.Stock(DefaultColor))
	}
}

func TestTotalStockIsDerived(t *testing.T) {
	f := New()
	f.AddColor("#FF0000")
	f.SetStock(DefaultColor, 5)
	f.SetStock("#FF0000", 7)
	if got := f.TotalStock(); got != 12 {
		t.Fatalf("TotalStock = %d, want 12", got)
	}
	f.SetStock("#FF0000", -4)
	if got := f.Stock("#FF0000"); got != 0 {
		t.Fatalf("negative stock not clamped: %d", got)
	}
	if got := f.TotalStock(); got != 5 {
		t.Fatalf("TotalStock = %d, want 5", got)
	}
	f.RemoveColor(DefaultColor)
	if got := f.TotalStock(); got != 0 {
		t.Fatalf("TotalStock after removal = %d, want 0", got)
	}
}

func TestSetImageIgnoresInactiveColorAndBadIndex(t *testing.T) {
	f := New()
	f.SetImage("#123456", 0, PendingUpload("x.png", nil))
	f.SetImage(DefaultColor, SlotsPerColor, PendingUpload("x.png", nil))
	f.SetImage(DefaultColor, -1, PendingUpload("x.png", nil))
	slots, _ := f.Images(DefaultColor)
	for i, s := range slots {
		if !s.Empty() {
			t.Fatalf("slot %d unexpectedly set", i)
		}
	}
}

func TestValidateMissingBanner(t *testing.T) {
	f := filledForm()
	f.SetBanner(EmptySlot())
	if _, err := f.BuildPayload(); !errors.Is(err, ErrMissingBanner) {
		t.Fatalf("err = %v, want ErrMissingBanner", err)
	}
	// existing reference is not enough in create mode
	f.SetBanner(ExistingRef("https://cdn/banner.png"))
	if _, err := f.BuildPayload(); !errors.Is(err, ErrMissingBanner) {
		t.Fatalf("err = %v, want ErrMissingBanner for existing ref in create mode", err)
	}
}

func TestValidateIncompleteVariantImages(t *testing.T) {
	f := filledForm()
	f.AddColor("#FF0000")
	f.SetStock("#FF0000", 2)
	for i := 0; i < SlotsPerColor-1; i++ {
		f.SetImage("#FF0000", i, PendingUpload("img.png", []byte("x")))
	}
	_, err := f.BuildPayload()
	var incomplete *IncompleteVariantImagesError
	if !errors.As(err, &incomplete) {
		t.Fatalf("err = %v, want IncompleteVariantImagesError", err)
	}
	if incomplete.Color != "#FF0000" {
		t.Fatalf("offending color = %s, want #FF0000", incomplete.Color)
	}
	// clearing a slot afterwards must not touch the other three
	f.SetImage("#FF0000", 1, EmptySlot())
	slots, _ := f.Images("#FF0000")
	if !slots[1].Empty() || slots[0].Empty() || slots[2].Empty() {
		t.Fatal("clearing slot 1 affected neighbors")
	}
}

func TestValidateScalarFields(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*Scalars)
		field string
	}{
		{"empty name", func(s *Scalars) { s.Name = "" }, "name"},
		{"zero price", func(s *Scalars) { s.Price = 0 }, "price"},
		{"negative price", func(s *Scalars) { s.Price = -5 }, "price"},
		{"unset category", func(s *Scalars) { s.CategoryID = 0 }, "category"},
		{"unknown category", func(s *Scalars) { s.CategoryID = 99 }, "category"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := filledForm()
			s := f.Scalars()
			tc.mut(&s)
			f.SetScalars(s)
			before := f.TotalStock()
			_, err := f.BuildPayload()
			var invalid *InvalidFieldError
			if !errors.As(err, &invalid) {
				t.Fatalf("err = %v, want InvalidFieldError", err)
			}
			if invalid.Field != tc.field {
				t.Fatalf("field = %s, want %s", invalid.Field, tc.field)
			}
			if f.TotalStock() != before {
				t.Fatal("validation mutated state")
			}
		})
	}
}

func TestBuildPayloadRoundTrip(t *testing.T) {
	f := New()
	f.SetScalars(Scalars{Name: "Nova Watch", Price: 199.5, CategoryID: 2})
	f.SetBanner(PendingUpload("banner.png", []byte("png")))
	f.SetColors([]string{"#FF0000", "#00FF00"})
	f.SetStock("#FF0000", 5)
	f.SetStock("#00FF00", 7)
	for _, c := range f.Colors() {
		for i := 0; i < SlotsPerColor; i++ {
			f.SetImage(c, i, PendingUpload("img.png", []byte("x")))
		}
	}
	// one slot is an existing reference: it must not become a file part
	f.SetImage("#00FF00", 3, ExistingRef("https://cdn/green-4.png"))

	p, err := f.BuildPayload()
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}
	if got := p.Fields["colors"]; got != "FF0000,00FF00" {
		t.Fatalf("colors = %q, want %q", got, "FF0000,00FF00")
	}
	if got := p.Fields["stock"]; got != "12" {
		t.Fatalf("stock = %q, want 12", got)
	}
	if got := p.Fields["category"]; got != "earbud" {
		t.Fatalf("category = %q, want earbud", got)
	}
	var stock map[string]int
	if err := json.Unmarshal([]byte(p.Fields["variantStock"]), &stock); err != nil {
		t.Fatalf("variantStock not valid JSON: %v", err)
	}
	if stock["FF0000"] != 5 || stock["00FF00"] != 7 {
		t.Fatalf("variantStock = %v", stock)
	}

	counts := map[string]int{}
	for _, file := range p.Files {
		counts[file.Field]++
	}
	if counts["banner"] != 1 {
		t.Fatalf("banner parts = %d, want 1", counts["banner"])
	}
	if counts["colorImages_FF0000[]"] != 4 {
		t.Fatalf("red parts = %d, want 4", counts["colorImages_FF0000[]"])
	}
	if counts["colorImages_00FF00[]"] != 3 {
		t.Fatalf("green parts = %d, want 3 (existing ref skipped)", counts["colorImages_00FF00[]"])
	}
}

func TestEditModePayloadKeepsExistingBanner(t *testing.T) {
	product := &models.Product{
		Name:       "Nova Watch",
		Price:      150,
		CategoryID: 1,
		Banner:     "https://cdn/banner.png",
		Images: []models.ProductImage{
			{Color: "FF0000", Stock: 4, Images: []string{"a", "b", "c", "d"}},
		},
	}
	f := NewEdit(product)
	assertConsistent(t, f)
	if got := f.Colors(); len(got) != 1 || got[0] != "#FF0000" {
		t.Fatalf("seeded colors = %v", got)
	}
	p, err := f.BuildPayload()
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}
	if p.Fields["existingBanner"] != "https://cdn/banner.png" {
		t.Fatalf("existingBanner = %q", p.Fields["existingBanner"])
	}
	for _, file := range p.Files {
		if file.Field == "banner" {
			t.Fatal("existing banner re-uploaded as file part")
		}
	}
}

func TestSubmitResetsOnCreateOnly(t *testing.T) {
	f := filledForm()
	f.AddColor("#FF0000")
	f.SetStock("#FF0000", 9)
	for i := 0; i < SlotsPerColor; i++ {
		f.SetImage("#FF0000", i, PendingUpload("img.png", []byte("x")))
	}

	err := f.Submit(context.Background(), func(context.Context, *Payload) error { return nil })
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := f.Colors(); len(got) != 1 || got[0] != DefaultColor {
		t.Fatalf("colors after reset = %v", got)
	}
	if f.TotalStock() != 0 {
		t.Fatalf("stock after reset = %d", f.TotalStock())
	}
	slots, _ := f.Images(DefaultColor)
	for i, s := range slots {
		if !s.Empty() {
			t.Fatalf("slot %d not empty after reset", i)
		}
	}
	if !f.Banner().Empty() {
		t.Fatal("banner survived reset")
	}
	if s := f.Scalars(); s.Name != "" || s.Price != 0 || s.CategoryID != 0 {
		t.Fatalf("scalars not reset: %+v", s)
	}
}

func TestSubmitFailureLeavesStateUntouched(t *testing.T) {
	f := filledForm()
	f.SetStock(DefaultColor, 6)
	boom := errors.New("upstream down")
	err := f.Submit(context.Background(), func(context.Context, *Payload) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped upstream error", err)
	}
	if f.TotalStock() != 6 {
		t.Fatalf("stock after failed submit = %d, want 6", f.TotalStock())
	}
	if s := f.Scalars(); s.Name != "Nova Watch" {
		t.Fatalf("scalars reset on failure: %+v", s)
	}
}

func TestPayloadEncodeProducesMultipart(t *testing.T) {
	f := filledForm()
	p, err := f.BuildPayload()
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}
	contentType, body, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if body.Len() == 0 {
		t.Fatal("empty body")
	}
	const prefix = "multipart/form-data; boundary="
	if len(contentType) <= len(prefix) || contentType[:len(prefix)] != prefix {
		t.Fatalf("content type = %q", contentType)
	}
}
