package export

import (
	"strconv"
	"strings"
)

// namedColors is a small palette used to turn variant hex codes into
// human-readable names on the order summary. Resolution is nearest-match,
// so off-palette codes still map to something sensible.
var namedColors = []struct {
	name    string
	r, g, b int
}{
	{"Black", 0x00, 0x00, 0x00},
	{"White", 0xFF, 0xFF, 0xFF},
	{"Red", 0xFF, 0x00, 0x00},
	{"Green", 0x00, 0x80, 0x00},
	{"Lime", 0x00, 0xFF, 0x00},
	{"Blue", 0x00, 0x00, 0xFF},
	{"Navy", 0x00, 0x00, 0x80},
	{"Yellow", 0xFF, 0xFF, 0x00},
	{"Gold", 0xFF, 0xD7, 0x00},
	{"Orange", 0xFF, 0xA5, 0x00},
	{"Purple", 0x80, 0x00, 0x80},
	{"Magenta", 0xFF, 0x00, 0xFF},
	{"Pink", 0xFF, 0xC0, 0xCB},
	{"Brown", 0xA5, 0x2A, 0x2A},
	{"Maroon", 0x80, 0x00, 0x00},
	{"Gray", 0x80, 0x80, 0x80},
	{"Silver", 0xC0, 0xC0, 0xC0},
	{"Cyan", 0x00, 0xFF, 0xFF},
	{"Teal", 0x00, 0x80, 0x80},
	{"Olive", 0x80, 0x80, 0x00},
}

// ColorName resolves a hex color (with or without '#') to the nearest
// palette name. Unparsable input yields "Unknown".
func ColorName(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return "Unknown"
	}
	best := ""
	bestDist := 1 << 30
	for _, c := range namedColors {
		dr, dg, db := c.r-r, c.g-g, c.b-b
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = c.name
		}
	}
	return best
}

func parseHex(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(n >> 16 & 0xFF), int(n >> 8 & 0xFF), int(n & 0xFF), true
}
