package convert

import (
	"testing"

	"github.com/dmnbraulio/mapa-clientes/internal/model"
)

func TestSplitDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want model.DescriptionParts
	}{
		{
			name: "exactly five segments",
			in:   "A - B - C - D - E",
			want: model.DescriptionParts{CodigoZona: "A", ZonaNombre: "B", CodigoCliente: "C", NombreCliente: "D", Referencias: "E"},
		},
		{
			name: "short description padded",
			in:   "A - B",
			want: model.DescriptionParts{CodigoZona: "A", ZonaNombre: "B", CodigoCliente: "x", NombreCliente: "x", Referencias: "x"},
		},
		{
			name: "overflow folded into referencias",
			in:   "A - B - C - D - E - F - G",
			want: model.DescriptionParts{CodigoZona: "A", ZonaNombre: "B", CodigoCliente: "C", NombreCliente: "D", Referencias: "E - F - G"},
		},
		{
			name: "empty",
			in:   "",
			want: model.DescriptionParts{CodigoZona: "x", ZonaNombre: "x", CodigoCliente: "x", NombreCliente: "x", Referencias: "x"},
		},
		{
			name: "whitespace only",
			in:   "   ",
			want: model.DescriptionParts{CodigoZona: "x", ZonaNombre: "x", CodigoCliente: "x", NombreCliente: "x", Referencias: "x"},
		},
		{
			name: "real zone description",
			in:   "SU01 - SURQUILLO - C00123 - FARMACIA LOPEZ - FRENTE AL MERCADO",
			want: model.DescriptionParts{
				CodigoZona:    "SU01",
				ZonaNombre:    "SURQUILLO",
				CodigoCliente: "C00123",
				NombreCliente: "FARMACIA LOPEZ",
				Referencias:   "FRENTE AL MERCADO",
			},
		},
		{
			name: "en dash separators",
			in:   "SU02 – LINCE – C00200 – BOTICA SALUD – ESQUINA",
			want: model.DescriptionParts{CodigoZona: "SU02", ZonaNombre: "LINCE", CodigoCliente: "C00200", NombreCliente: "BOTICA SALUD", Referencias: "ESQUINA"},
		},
		{
			name: "em dash without spaces",
			in:   "SU03—MIRAFLORES—C00300—BOTICA MAR—x",
			want: model.DescriptionParts{CodigoZona: "SU03", ZonaNombre: "MIRAFLORES", CodigoCliente: "C00300", NombreCliente: "BOTICA MAR", Referencias: "x"},
		},
		{
			name: "irregular spacing around hyphens",
			in:   "SU04  -LA VICTORIA-  C00400 -BOTICA SOL- CDRA 5",
			want: model.DescriptionParts{CodigoZona: "SU04", ZonaNombre: "LA VICTORIA", CodigoCliente: "C00400", NombreCliente: "BOTICA SOL", Referencias: "CDRA 5"},
		},
		{
			name: "mojibake repaired before splitting",
			in:   "SU01 - SURQUILLO - C00123 - FARMACIA LÃPEZ - REFERENCIA",
			want: model.DescriptionParts{
				CodigoZona:    "SU01",
				ZonaNombre:    "SURQUILLO",
				CodigoCliente: "C00123",
				NombreCliente: "FARMACIA LÓPEZ",
				Referencias:   "REFERENCIA",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitDescription(tt.in)
			if got != tt.want {
				t.Errorf("SplitDescription(%q) =\n  %+v\nwant\n  %+v", tt.in, got, tt.want)
			}
		})
	}
}
