package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmnbraulio/mapa-clientes/internal/model"
)

func TestFormatZonaSummaries_Empty(t *testing.T) {
	var buf bytes.Buffer
	formatZonaSummaries(&buf, nil)

	output := buf.String()
	// Header is printed even with no zones.
	assert.Contains(t, output, "ZONA")
	assert.Contains(t, output, "CLIENTES")
	assert.Contains(t, output, "SIN COORDS")
}

func TestFormatZonaSummaries(t *testing.T) {
	zonas := []model.ZonaSummary{
		{CodigoZona: "SU01", ZonaNombre: "SURQUILLO", Clientes: 12, MissingCoords: 1, Color: "red"},
		{CodigoZona: "SU05", ZonaNombre: "SAN BORJA", Clientes: 7, MissingCoords: 0, Color: "orange"},
	}

	var buf bytes.Buffer
	formatZonaSummaries(&buf, zonas)

	output := buf.String()
	assert.Contains(t, output, "SU01")
	assert.Contains(t, output, "SURQUILLO")
	assert.Contains(t, output, "12")
	assert.Contains(t, output, "red")
	assert.Contains(t, output, "SU05")
	assert.Contains(t, output, "orange")
}
