package matching

import "strings"

// RegionTable maps a region name to the city/area names it contains.  Used
// by the location factor's same-region heuristic.  Injectable so deployments
// outside the UK can supply their own geography.
type RegionTable map[string][]string

// DefaultUKRegions returns the built-in UK region table.
func DefaultUKRegions() RegionTable {
	return RegionTable{
		"greater london": {"london", "croydon", "bromley", "ealing", "harrow"},
		"south east":     {"brighton", "reading", "oxford", "southampton", "portsmouth", "milton keynes"},
		"south west":     {"bristol", "bath", "exeter", "plymouth", "bournemouth"},
		"north west":     {"manchester", "liverpool", "preston", "blackpool", "chester"},
		"north east":     {"newcastle", "sunderland", "durham", "middlesbrough"},
		"west midlands":  {"birmingham", "coventry", "wolverhampton", "walsall"},
		"east midlands":  {"nottingham", "leicester", "derby", "northampton"},
		"yorkshire":      {"leeds", "sheffield", "york", "bradford", "hull"},
		"scotland":       {"edinburgh", "glasgow", "aberdeen", "dundee"},
		"wales":          {"cardiff", "swansea", "newport", "wrexham"},
	}
}

// regionOf returns the region containing loc, matching city names as
// substrings, or "" when no region matches.
func (rt RegionTable) regionOf(loc string) string {
	lower := strings.ToLower(loc)
	if lower == "" {
		return ""
	}
	for region, cities := range rt {
		if strings.Contains(lower, region) {
			return region
		}
		for _, city := range cities {
			if strings.Contains(lower, city) {
				return region
			}
		}
	}
	return ""
}

// sameRegion reports whether both locations resolve to the same region.
func (rt RegionTable) sameRegion(a, b string) bool {
	ra := rt.regionOf(a)
	return ra != "" && ra == rt.regionOf(b)
}
