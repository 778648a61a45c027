package handle

import "strings"

// locationMarkers are the prepositions that introduce a location phrase in a
// query like "nearest hospital in Adyar, Chennai".
var locationMarkers = []string{" in ", " near ", " at ", " around "}

// extractLocation pulls the address portion out of a free-text query. When no
// marker is present, the whole query is handed to the geocoder as-is.
func extractLocation(query string) string {
	lower := strings.ToLower(query)
	best := -1
	width := 0
	for _, m := range locationMarkers {
		if i := strings.LastIndex(lower, m); i > best {
			best = i
			width = len(m)
		}
	}
	if best < 0 {
		return strings.TrimSpace(query)
	}
	return strings.TrimSpace(query[best+width:])
}
