// Package model defines the shared data types for the client-location dataset.
package model

// Placeholder marks a description field that was missing in the source export.
// Downstream consumers must treat it as "not available", not as a literal value.
const Placeholder = "x"

// CleanColumns is the exact output column order of the clean CSV.
var CleanColumns = []string{
	"CodigoZona",
	"ZonaNombre",
	"CodigoCliente",
	"NombreCliente",
	"Botica",
	"Referencias",
	"Direccion",
	"Lat",
	"Lng",
	"DescripcionOriginal",
}

// Cliente is one normalized client-location row.
// Lat/Lng are nil when the source geometry could not be parsed; such rows are
// kept in the clean CSV (with empty coordinate cells) and dropped only by
// consumers that need to place markers.
type Cliente struct {
	CodigoZona          string   `json:"codigo_zona"`
	ZonaNombre          string   `json:"zona_nombre"`
	CodigoCliente       string   `json:"codigo_cliente"`
	NombreCliente       string   `json:"nombre_cliente"`
	Botica              string   `json:"botica"`
	Referencias         string   `json:"referencias"`
	Direccion           string   `json:"direccion"`
	Lat                 *float64 `json:"lat"`
	Lng                 *float64 `json:"lng"`
	DescripcionOriginal string   `json:"descripcion_original"`
}

// HasCoords reports whether both coordinates are present.
func (c *Cliente) HasCoords() bool {
	return c.Lat != nil && c.Lng != nil
}

// DescriptionParts are the five fields parsed from a MyMaps description:
// "ZonaCodigo - ZonaNombre - CodigoCliente - NombreCliente - Referencias".
type DescriptionParts struct {
	CodigoZona    string
	ZonaNombre    string
	CodigoCliente string
	NombreCliente string
	Referencias   string
}

// ZonaSummary aggregates one zone of a clean dataset.
type ZonaSummary struct {
	CodigoZona    string `json:"codigo_zona"`
	ZonaNombre    string `json:"zona_nombre"`
	Clientes      int    `json:"clientes"`
	MissingCoords int    `json:"missing_coords"`
	Color         string `json:"color"`
}

// zonaColors is the marker color per zone code used by the map front-end.
// Zones without an entry render gray.
var zonaColors = map[string]string{
	"SU01": "red",
	"SU02": "green",
	"SU03": "blue",
	"SU04": "purple",
	"SU05": "orange",
}

// ZonaColor returns the marker color for a zone code.
func ZonaColor(codigo string) string {
	if c, ok := zonaColors[codigo]; ok {
		return c
	}
	return "gray"
}
