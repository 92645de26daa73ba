package convert

import "strings"

// Column detection is heuristic: MyMaps exports do not have stable header
// names, so semantic columns are located by an explicit fallback chain
// (exact name -> keyword substring -> sample-value scan), each step
// returning an optional result.

const sampleRows = 5

// matchExact returns the index of the first column whose trimmed, lowercased
// name equals one of names.
func matchExact(header []string, names ...string) (int, bool) {
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		for _, want := range names {
			if name == want {
				return i, true
			}
		}
	}
	return -1, false
}

// matchKeyword returns the index of the first column whose trimmed, lowercased
// name contains one of the fragments.
func matchKeyword(header []string, fragments ...string) (int, bool) {
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		for _, frag := range fragments {
			if strings.Contains(name, frag) {
				return i, true
			}
		}
	}
	return -1, false
}

// matchSample returns the index of the first column whose leading non-empty
// values start with prefix (case-insensitive). Only the first few rows of
// each column are inspected.
func matchSample(header []string, rows [][]string, prefix string) (int, bool) {
	for i := range header {
		seen := 0
		for _, row := range rows {
			if seen >= sampleRows {
				break
			}
			val := strings.TrimSpace(getCol(row, i))
			if val == "" {
				continue
			}
			seen++
			if strings.HasPrefix(strings.ToUpper(val), prefix) {
				return i, true
			}
		}
	}
	return -1, false
}

// locateGeometryColumn finds the WKT column by name, falling back to scanning
// sample values for a POINT prefix.
func locateGeometryColumn(header []string, rows [][]string) (int, bool) {
	if i, ok := matchKeyword(header, "wkt", "point", "geometry"); ok {
		return i, true
	}
	return matchSample(header, rows, "POINT")
}

// locateNombreColumn finds the marker-label column. When no known name
// matches, the first column other than the geometry column is used.
func locateNombreColumn(header []string, geomIdx int) (int, bool) {
	if i, ok := matchExact(header, "nombre", "name", "title", "placename"); ok {
		return i, true
	}
	for i := range header {
		if i != geomIdx {
			return i, true
		}
	}
	return -1, false
}

// locateDescripcionColumn finds the composite description column.
func locateDescripcionColumn(header []string) (int, bool) {
	return matchKeyword(header, "descrip", "desc")
}

// locateDireccionColumn finds the optional address column.
func locateDireccionColumn(header []string) (int, bool) {
	return matchExact(header, "direccion", "dirección", "address", "addr", "street")
}

// getCol returns row[idx] or "" when the row is short or idx is negative.
func getCol(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
