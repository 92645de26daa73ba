package convert

import (
	"regexp"
	"strings"

	"github.com/dmnbraulio/mapa-clientes/internal/model"
)

// canonSep is the canonical field separator of a MyMaps description.
const canonSep = " - "

// dashSeparator matches any dash-like separator (hyphen, en dash, em dash)
// with optional surrounding whitespace.
var dashSeparator = regexp.MustCompile(`\s*[-–—]\s*`)

// SplitDescription splits a composite description
// ("ZonaCodigo - ZonaNombre - CodigoCliente - NombreCliente - Referencias")
// into its five fields. Missing trailing fields are padded with the "x"
// placeholder; when more than five segments appear, the first four are kept
// and the remainder is folded back into Referencias with the canonical
// separator. Always returns exactly five fields.
func SplitDescription(desc string) model.DescriptionParts {
	if strings.TrimSpace(desc) == "" {
		return model.DescriptionParts{
			CodigoZona:    model.Placeholder,
			ZonaNombre:    model.Placeholder,
			CodigoCliente: model.Placeholder,
			NombreCliente: model.Placeholder,
			Referencias:   model.Placeholder,
		}
	}

	desc = RepairEncoding(desc)
	norm := dashSeparator.ReplaceAllString(strings.TrimSpace(desc), canonSep)

	segs := strings.Split(norm, canonSep)
	for i := range segs {
		segs[i] = strings.TrimSpace(segs[i])
	}

	if len(segs) > 5 {
		segs = append(segs[:4:4], strings.Join(segs[4:], canonSep))
	}
	for len(segs) < 5 {
		segs = append(segs, model.Placeholder)
	}

	return model.DescriptionParts{
		CodigoZona:    segs[0],
		ZonaNombre:    segs[1],
		CodigoCliente: segs[2],
		NombreCliente: segs[3],
		Referencias:   segs[4],
	}
}
