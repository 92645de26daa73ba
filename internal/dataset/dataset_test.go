package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmnbraulio/mapa-clientes/internal/model"
)

const cleanCSV = "\xEF\xBB\xBF" + `CodigoZona,ZonaNombre,CodigoCliente,NombreCliente,Botica,Referencias,Direccion,Lat,Lng,DescripcionOriginal
SU01,SURQUILLO,C001,CLIENTE UNO,BOTICA A,REF A,,-12.05,-77.03,SU01 - SURQUILLO - C001 - CLIENTE UNO - REF A
SU01,SURQUILLO,C002,CLIENTE DOS,BOTICA B,x,,-12.06,-77.04,SU01 - SURQUILLO - C002 - CLIENTE DOS
SU02,LINCE,C003,CLIENTE TRES,BOTICA C,REF C,,-12.08,-77.02,SU02 - LINCE - C003 - CLIENTE TRES - REF C
SU02,LINCE,C004,CLIENTE CUATRO,BOTICA D,x,,,,SU02 - LINCE - C004 - CLIENTE CUATRO
`

func writeClean(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clientes.csv")
	require.NoError(t, os.WriteFile(path, []byte(cleanCSV), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	ds, err := Load(writeClean(t))
	require.NoError(t, err)

	// All rows are kept, including the one without coordinates.
	assert.Equal(t, 4, ds.Len())

	records := ds.All()
	assert.True(t, records[0].HasCoords())
	assert.False(t, records[3].HasCoords())
	assert.Equal(t, -12.05, *records[0].Lat)
	assert.Equal(t, -77.03, *records[0].Lng)
}

func TestLoad_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("CodigoZona,Lat,Lng\nSU01,-12,-77\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestListClientes_NoZonesSelected(t *testing.T) {
	ds, err := Load(writeClean(t))
	require.NoError(t, err)

	// No zone selected: the map shows nothing.
	out, err := ds.ListClientes(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestListClientes_ZoneFilter(t *testing.T) {
	ds, err := Load(writeClean(t))
	require.NoError(t, err)

	out, err := ds.ListClientes(context.Background(), Filter{Zonas: []string{"SU01"}})
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, rec := range out {
		assert.Equal(t, "SU01", rec.CodigoZona)
	}

	// SU02 has two rows but one has no coordinates; it is never served.
	out, err = ds.ListClientes(context.Background(), Filter{Zonas: []string{"SU02"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "BOTICA C", out[0].Botica)
}

func TestListClientes_BoticaNarrowsWithinZones(t *testing.T) {
	ds, err := Load(writeClean(t))
	require.NoError(t, err)

	out, err := ds.ListClientes(context.Background(), Filter{
		Zonas:   []string{"SU01", "SU02"},
		Boticas: []string{"BOTICA B"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "C002", out[0].CodigoCliente)
}

func TestListZonas(t *testing.T) {
	ds, err := Load(writeClean(t))
	require.NoError(t, err)

	zonas, err := ds.ListZonas(context.Background())
	require.NoError(t, err)
	require.Len(t, zonas, 2)

	assert.Equal(t, model.ZonaSummary{
		CodigoZona: "SU01", ZonaNombre: "SURQUILLO", Clientes: 2, MissingCoords: 0, Color: "red",
	}, zonas[0])
	assert.Equal(t, model.ZonaSummary{
		CodigoZona: "SU02", ZonaNombre: "LINCE", Clientes: 2, MissingCoords: 1, Color: "green",
	}, zonas[1])
}

func TestCenter(t *testing.T) {
	ds, err := Load(writeClean(t))
	require.NoError(t, err)

	lat, lng, ok := Center(ds.All())
	require.True(t, ok)
	assert.InDelta(t, (-12.05-12.06-12.08)/3, lat, 1e-9)
	assert.InDelta(t, (-77.03-77.04-77.02)/3, lng, 1e-9)

	_, _, ok = Center(nil)
	assert.False(t, ok)
}
