package render

import (
	"strconv"
	"strings"
)

// ParseHexColor parses a 3- or 6-digit hex color, with or without a
// leading #, into 8-bit RGB. Absent or malformed values are black.
func ParseHexColor(hex string) (r, g, b int) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	switch len(h) {
	case 3:
		rv, err1 := strconv.ParseUint(string(h[0])+string(h[0]), 16, 8)
		gv, err2 := strconv.ParseUint(string(h[1])+string(h[1]), 16, 8)
		bv, err3 := strconv.ParseUint(string(h[2])+string(h[2]), 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, 0, 0
		}
		return int(rv), int(gv), int(bv)
	case 6:
		rv, err1 := strconv.ParseUint(h[0:2], 16, 8)
		gv, err2 := strconv.ParseUint(h[2:4], 16, 8)
		bv, err3 := strconv.ParseUint(h[4:6], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, 0, 0
		}
		return int(rv), int(gv), int(bv)
	default:
		return 0, 0, 0
	}
}
