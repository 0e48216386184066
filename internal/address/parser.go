// Package address splits free-text Vietnamese addresses into administrative
// components for geocoding.
package address

import (
	"regexp"
	"strings"
)

// Components is the structured form of an address.
type Components struct {
	HouseNumber string
	Street      string
	Ward        string
	District    string
	City        string
}

// DefaultCity is the canonical metropolitan area these contracts operate in.
const DefaultCity = "Hồ Chí Minh"

var (
	houseNumberPrefix = regexp.MustCompile(`^(\d+[0-9A-Za-z/\-]*)\s+(.+)$`)

	wardMarkers     = []string{"phường", "p.", "xã", "thị trấn"}
	districtMarkers = []string{"quận", "q.", "huyện", "thành phố thủ đức", "tp thủ đức", "tp. thủ đức"}

	cityAliases = []string{
		"hồ chí minh", "ho chi minh", "hcm", "tphcm", "tp.hcm", "tp hcm",
		"sài gòn", "sai gon", "sg",
	}
)

// Parse splits on commas. The first segment becomes house number + street when
// a numeric prefix is present, otherwise the whole segment is the street.
// Ward and district are recognized by administrative-unit markers; anything
// that looks like a known alias of the default city is canonicalized, an
// unrecognized trailing segment passes through as the city unchanged.
func Parse(raw string) Components {
	var c Components

	segments := strings.Split(raw, ",")
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}
	if len(segments) == 0 || segments[0] == "" {
		c.City = DefaultCity
		return c
	}

	if m := houseNumberPrefix.FindStringSubmatch(segments[0]); m != nil {
		c.HouseNumber = m[1]
		c.Street = m[2]
	} else {
		c.Street = segments[0]
	}

	for _, seg := range segments[1:] {
		lower := strings.ToLower(seg)
		switch {
		case c.Ward == "" && hasAnyPrefixOrMarker(lower, wardMarkers):
			c.Ward = seg
		case c.District == "" && hasAnyPrefixOrMarker(lower, districtMarkers):
			c.District = seg
		case c.City == "":
			c.City = canonicalCity(seg)
		}
	}

	if c.City == "" {
		c.City = DefaultCity
	}
	return c
}

func hasAnyPrefixOrMarker(lower string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func canonicalCity(seg string) string {
	lower := strings.ToLower(seg)
	lower = strings.TrimPrefix(lower, "tp. ")
	lower = strings.TrimPrefix(lower, "tp ")
	lower = strings.TrimPrefix(lower, "thành phố ")
	for _, alias := range cityAliases {
		if strings.Contains(lower, alias) {
			return DefaultCity
		}
	}
	return seg
}
