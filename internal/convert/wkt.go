package convert

import (
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// Point is a parsed coordinate pair in geographic degrees.
type Point struct {
	Lat float64
	Lng float64
}

// ExtractPoint parses a WKT value like `POINT (lon lat)`, possibly wrapped in
// quotes, and returns the coordinates in (lat, lng) order — note the swap:
// WKT stores longitude first, the clean dataset stores latitude first.
//
// Returns nil for anything that is not a plain 2-D POINT (malformed text,
// other geometry types, empty points). Absence is a normal outcome here, not
// an error: rows without a parseable point are kept with empty coordinates.
func ExtractPoint(raw string) *Point {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)

	if !strings.HasPrefix(s, "POINT") {
		return nil
	}

	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil
	}

	p, ok := g.(*geom.Point)
	if !ok || p.Layout() != geom.XY {
		return nil
	}

	coords := p.FlatCoords()
	if len(coords) < 2 {
		return nil // POINT EMPTY
	}

	return &Point{Lat: coords[1], Lng: coords[0]}
}
