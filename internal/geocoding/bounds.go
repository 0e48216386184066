package geocoding

import "strings"

// BoundingBox constrains a bounded search to one district.
type BoundingBox struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// districtBounds covers the well-known inner districts of Ho Chi Minh City.
// Addresses outside this table simply skip the bounded strategy.
var districtBounds = map[string]BoundingBox{
	"quận 1":     {106.688, 10.762, 106.712, 10.793},
	"quận 3":     {106.670, 10.768, 106.700, 10.795},
	"quận 5":     {106.650, 10.747, 106.685, 10.765},
	"quận 7":     {106.690, 10.700, 106.755, 10.760},
	"quận 10":    {106.652, 10.760, 106.684, 10.785},
	"bình thạnh": {106.690, 10.788, 106.750, 10.830},
	"phú nhuận":  {106.670, 10.790, 106.700, 10.810},
	"tân bình":   {106.620, 10.780, 106.680, 10.830},
	"gò vấp":     {106.640, 10.815, 106.700, 10.870},
	"thủ đức":    {106.700, 10.820, 106.800, 10.900},
}

// boundsFor looks a parsed district up in the table so "Quận Bình Thạnh" and
// "Bình Thạnh" both resolve. Keys only count on token boundaries: "quận 1"
// must not match inside "quận 12". The longest matching key wins, so a string
// containing both "quận 1" and "quận 10" resolves to quận 10.
func boundsFor(district string) (BoundingBox, bool) {
	lower := strings.ToLower(strings.TrimSpace(district))
	if lower == "" {
		return BoundingBox{}, false
	}
	if box, ok := districtBounds[lower]; ok {
		return box, true
	}
	best := ""
	for key := range districtBounds {
		if !containsToken(lower, key) {
			continue
		}
		if len(key) > len(best) || (len(key) == len(best) && key < best) {
			best = key
		}
	}
	if best == "" {
		return BoundingBox{}, false
	}
	return districtBounds[best], true
}

// containsToken reports whether key occurs in s delimited by non-word bytes
// (or the string ends). Bytes >= 0x80 count as word bytes so multi-byte
// Vietnamese letters never split a token.
func containsToken(s, key string) bool {
	for from := 0; from <= len(s)-len(key); {
		i := strings.Index(s[from:], key)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(key)
		startOK := start == 0 || !isWordByte(s[start-1])
		endOK := end == len(s) || !isWordByte(s[end])
		if startOK && endOK {
			return true
		}
		from = start + 1
	}
	return false
}

func isWordByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= 0x80:
		return true
	}
	return false
}
