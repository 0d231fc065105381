package productform

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
)

// ApplyMultipart folds an incoming multipart submission into the form. Fields
// that are absent keep their current (seeded) values, so the same code path
// serves both create and edit requests.
//
// Expected parts:
//
//	name, tagline, sku, description, brand, price, categoryId,
//	comingSoon, isActive            scalar fields
//	colors                          comma-separated hex codes
//	variantStock                    JSON object keyed by stripped hex code
//	existingBanner                  URL of a banner kept from a prior save
//	banner                          new banner file
//	slots_<code>                    JSON array of kept image URLs per slot
//	colorImages_<code>[]            new image files, filling empty slots
func (f *Form) ApplyMultipart(mf *multipart.Form) error {
	field := func(name string) (string, bool) {
		vs, ok := mf.Value[name]
		if !ok || len(vs) == 0 {
			return "", false
		}
		return strings.TrimSpace(vs[0]), true
	}

	s := f.Scalars()
	if v, ok := field("name"); ok {
		s.Name = v
	}
	if v, ok := field("tagline"); ok {
		s.Tagline = v
	}
	if v, ok := field("sku"); ok {
		s.SKU = v
	}
	if v, ok := field("description"); ok {
		s.Description = v
	}
	if v, ok := field("brand"); ok {
		s.Brand = v
	}
	if v, ok := field("price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return &InvalidFieldError{Field: "price"}
		}
		s.Price = price
	}
	if v, ok := field("categoryId"); ok {
		id, err := strconv.Atoi(v)
		if err != nil {
			return &InvalidFieldError{Field: "categoryId"}
		}
		s.CategoryID = id
	}
	if v, ok := field("comingSoon"); ok {
		s.ComingSoon = v == "true"
	}
	if v, ok := field("isActive"); ok {
		s.IsActive = v != "false"
	}
	f.SetScalars(s)

	if v, ok := field("colors"); ok {
		var colors []string
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				colors = append(colors, "#"+strings.TrimPrefix(c, "#"))
			}
		}
		f.SetColors(colors)
	}

	if v, ok := field("variantStock"); ok && v != "" {
		var stock map[string]int
		if err := json.Unmarshal([]byte(v), &stock); err != nil {
			return &InvalidFieldError{Field: "variantStock"}
		}
		for code, n := range stock {
			f.SetStock("#"+strings.TrimPrefix(code, "#"), n)
		}
	}

	// Banner: a new file wins over a kept reference.
	if files := mf.File["banner"]; len(files) > 0 {
		data, err := readPart(files[0])
		if err != nil {
			return err
		}
		f.SetBanner(PendingUpload(files[0].Filename, data))
	} else if v, ok := field("existingBanner"); ok && v != "" {
		f.SetBanner(ExistingRef(v))
	}

	for _, color := range f.Colors() {
		code := strings.TrimPrefix(color, "#")

		if v, ok := field("slots_" + code); ok {
			var urls []string
			if err := json.Unmarshal([]byte(v), &urls); err != nil {
				return &InvalidFieldError{Field: "slots_" + code}
			}
			for i := 0; i < SlotsPerColor && i < len(urls); i++ {
				if urls[i] == "" {
					f.SetImage(color, i, EmptySlot())
				} else {
					f.SetImage(color, i, ExistingRef(urls[i]))
				}
			}
		}

		// New files fill the empty slots in index order.
		files := mf.File["colorImages_"+code+"[]"]
		slots, _ := f.Images(color)
		next := 0
		for _, fh := range files {
			for next < SlotsPerColor && !slots[next].Empty() {
				next++
			}
			if next >= SlotsPerColor {
				break
			}
			data, err := readPart(fh)
			if err != nil {
				return err
			}
			slot := PendingUpload(fh.Filename, data)
			f.SetImage(color, next, slot)
			slots[next] = slot
		}
	}

	return nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}
	return data, nil
}
