package convert

import "testing"

func TestLocateGeometryColumn_ByName(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   int
	}{
		{"wkt header", []string{"WKT", "nombre", "descripción"}, 0},
		{"geometry header", []string{"nombre", "Geometry", "desc"}, 1},
		{"point substring", []string{"nombre", "geo_point_2d"}, 1},
		{"case insensitive", []string{"nombre", "GEOMETRY"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := locateGeometryColumn(tt.header, nil)
			if !ok {
				t.Fatalf("locateGeometryColumn(%v) not found", tt.header)
			}
			if idx != tt.want {
				t.Errorf("locateGeometryColumn(%v) = %d, want %d", tt.header, idx, tt.want)
			}
		})
	}
}

func TestLocateGeometryColumn_BySampleValues(t *testing.T) {
	header := []string{"col_a", "col_b", "col_c"}
	rows := [][]string{
		{"Farmacia Uno", "", "algo"},
		{"Farmacia Dos", "POINT (-77.03 -12.05)", "otro"},
	}

	idx, ok := locateGeometryColumn(header, rows)
	if !ok {
		t.Fatal("locateGeometryColumn() not found, want column 1 via sample scan")
	}
	if idx != 1 {
		t.Errorf("locateGeometryColumn() = %d, want 1", idx)
	}
}

func TestLocateGeometryColumn_NotFound(t *testing.T) {
	header := []string{"nombre", "direccion"}
	rows := [][]string{{"Farmacia Uno", "Av. Lima 100"}}

	if idx, ok := locateGeometryColumn(header, rows); ok {
		t.Errorf("locateGeometryColumn() = %d, want not found", idx)
	}
}

func TestLocateNombreColumn(t *testing.T) {
	// Known name wins.
	idx, ok := locateNombreColumn([]string{"WKT", "nombre", "desc"}, 0)
	if !ok || idx != 1 {
		t.Errorf("locateNombreColumn() = %d, %v, want 1, true", idx, ok)
	}

	// English alias.
	idx, ok = locateNombreColumn([]string{"WKT", "Name", "desc"}, 0)
	if !ok || idx != 1 {
		t.Errorf("locateNombreColumn() = %d, %v, want 1, true", idx, ok)
	}

	// Fallback: first column that is not the geometry column.
	idx, ok = locateNombreColumn([]string{"WKT", "etiqueta", "desc"}, 0)
	if !ok || idx != 1 {
		t.Errorf("locateNombreColumn() fallback = %d, %v, want 1, true", idx, ok)
	}

	// Only a geometry column: nothing to use.
	if idx, ok := locateNombreColumn([]string{"WKT"}, 0); ok {
		t.Errorf("locateNombreColumn() = %d, want not found", idx)
	}
}

func TestLocateDescripcionColumn(t *testing.T) {
	// Matches even when the header itself is mojibake.
	idx, ok := locateDescripcionColumn([]string{"WKT", "nombre", "descripciÃ³n"})
	if !ok || idx != 2 {
		t.Errorf("locateDescripcionColumn() = %d, %v, want 2, true", idx, ok)
	}

	if idx, ok := locateDescripcionColumn([]string{"WKT", "nombre"}); ok {
		t.Errorf("locateDescripcionColumn() = %d, want not found", idx)
	}
}

func TestLocateDireccionColumn(t *testing.T) {
	idx, ok := locateDireccionColumn([]string{"WKT", "nombre", "Address"})
	if !ok || idx != 2 {
		t.Errorf("locateDireccionColumn() = %d, %v, want 2, true", idx, ok)
	}

	// Substring is not enough for the address column; exact names only.
	if idx, ok := locateDireccionColumn([]string{"WKT", "home_address_hint"}); ok {
		t.Errorf("locateDireccionColumn() = %d, want not found", idx)
	}
}
