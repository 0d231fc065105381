package productform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
)

// FilePart is one file attachment in the submission payload.
type FilePart struct {
	Field    string
	Filename string
	Data     []byte
}

// Payload is the reconciled multipart submission for a product. Fields are
// flat key/value pairs; Files carries only pending uploads. Existing
// references are represented by fields, never re-uploaded.
type Payload struct {
	Fields map[string]string
	Files  []FilePart
}

// BuildPayload validates the form and serializes it for submission.
//
// Colors are comma-joined with the '#' prefix stripped; per-variant stock
// becomes a JSON object keyed by the stripped code; per color, only slots
// holding pending uploads are attached, under "colorImages_<code>[]".
func (f *Form) BuildPayload() (*Payload, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	p := &Payload{Fields: make(map[string]string)}
	p.Fields["name"] = f.scalars.Name
	p.Fields["tagline"] = f.scalars.Tagline
	p.Fields["sku"] = f.scalars.SKU
	p.Fields["description"] = f.scalars.Description
	p.Fields["brand"] = f.scalars.Brand
	p.Fields["price"] = strconv.FormatFloat(f.scalars.Price, 'f', -1, 64)
	p.Fields["category"] = categoryNames[f.scalars.CategoryID]
	p.Fields["stock"] = strconv.Itoa(f.TotalStock())
	p.Fields["comingSoon"] = strconv.FormatBool(f.scalars.ComingSoon)

	switch f.banner.Kind {
	case SlotPendingUpload:
		p.Files = append(p.Files, FilePart{
			Field:    "banner",
			Filename: f.banner.Filename,
			Data:     f.banner.Data,
		})
	case SlotExistingRef:
		p.Fields["existingBanner"] = f.banner.URL
	}

	cleaned := make([]string, len(f.colors))
	for i, c := range f.colors {
		cleaned[i] = stripHash(c)
	}
	p.Fields["colors"] = strings.Join(cleaned, ",")

	cleanedStock := make(map[string]int, len(f.stock))
	for color, n := range f.stock {
		cleanedStock[stripHash(color)] = n
	}
	stockJSON, err := json.Marshal(cleanedStock)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal variant stock: %w", err)
	}
	p.Fields["variantStock"] = string(stockJSON)

	for _, color := range f.colors {
		code := stripHash(color)
		slots := f.images[color]
		for _, slot := range slots {
			if slot.Kind == SlotPendingUpload {
				p.Files = append(p.Files, FilePart{
					Field:    fmt.Sprintf("colorImages_%s[]", code),
					Filename: slot.Filename,
					Data:     slot.Data,
				})
			}
		}
	}

	return p, nil
}

// Encode renders the payload as a multipart/form-data body.
func (p *Payload) Encode() (contentType string, body *bytes.Buffer, err error) {
	body = &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for key, value := range p.Fields {
		if err := w.WriteField(key, value); err != nil {
			return "", nil, fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}
	for _, file := range p.Files {
		part, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return "", nil, fmt.Errorf("failed to create part %s: %w", file.Field, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return "", nil, fmt.Errorf("failed to write part %s: %w", file.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), body, nil
}

func stripHash(color string) string {
	return strings.TrimPrefix(color, "#")
}
