// Package dataset loads and filters the clean client-location CSV for
// consumers that place markers on a map.
package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/dmnbraulio/mapa-clientes/internal/model"
)

// Filter narrows the dataset the way the map sidebar does: one or more zone
// codes must be selected before anything is shown; botica names optionally
// narrow further within the selected zones.
type Filter struct {
	Zonas   []string
	Boticas []string
}

// Source is a queryable clean dataset. Implemented by the CSV-backed Dataset
// and by store.SQLiteStore.
type Source interface {
	ListClientes(ctx context.Context, f Filter) ([]model.Cliente, error)
	ListZonas(ctx context.Context) ([]model.ZonaSummary, error)
}

// Dataset is an in-memory clean dataset loaded from CSV.
type Dataset struct {
	records []model.Cliente
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads a clean CSV produced by the converter. All rows are kept,
// including those without coordinates; filtering them out happens at query
// time so summaries can still report them.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s", path)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "dataset: parse csv")
	}
	if len(rows) == 0 {
		return nil, eris.New("dataset: csv has no header row")
	}

	colIdx := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		colIdx[strings.TrimSpace(col)] = i
	}
	for _, col := range model.CleanColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, eris.Errorf("dataset: missing column %q", col)
		}
	}

	get := func(row []string, name string) string {
		idx := colIdx[name]
		if idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	records := make([]model.Cliente, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := model.Cliente{
			CodigoZona:          get(row, "CodigoZona"),
			ZonaNombre:          get(row, "ZonaNombre"),
			CodigoCliente:       get(row, "CodigoCliente"),
			NombreCliente:       get(row, "NombreCliente"),
			Botica:              get(row, "Botica"),
			Referencias:         get(row, "Referencias"),
			Direccion:           get(row, "Direccion"),
			DescripcionOriginal: get(row, "DescripcionOriginal"),
		}
		rec.Lat = parseCoord(get(row, "Lat"))
		rec.Lng = parseCoord(get(row, "Lng"))
		records = append(records, rec)
	}

	return &Dataset{records: records}, nil
}

func parseCoord(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Len returns the total number of rows, including those without coordinates.
func (d *Dataset) Len() int { return len(d.records) }

// All returns every loaded record.
func (d *Dataset) All() []model.Cliente { return d.records }

// ListClientes returns plottable records matching the filter. With no zones
// selected the result is empty: the map shows nothing until a zone is picked.
func (d *Dataset) ListClientes(_ context.Context, f Filter) ([]model.Cliente, error) {
	if len(f.Zonas) == 0 {
		return nil, nil
	}

	zonas := toSet(f.Zonas)
	boticas := toSet(f.Boticas)

	var out []model.Cliente
	for _, rec := range d.records {
		if !rec.HasCoords() {
			continue
		}
		if !zonas[rec.CodigoZona] {
			continue
		}
		if len(boticas) > 0 && !boticas[rec.Botica] {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// ListZonas summarizes all zones present in the dataset, sorted by code.
func (d *Dataset) ListZonas(_ context.Context) ([]model.ZonaSummary, error) {
	return SummarizeZonas(d.records), nil
}

// SummarizeZonas aggregates records per zone code.
func SummarizeZonas(records []model.Cliente) []model.ZonaSummary {
	byZona := make(map[string]*model.ZonaSummary)
	for i := range records {
		rec := &records[i]
		z, ok := byZona[rec.CodigoZona]
		if !ok {
			z = &model.ZonaSummary{
				CodigoZona: rec.CodigoZona,
				ZonaNombre: rec.ZonaNombre,
				Color:      model.ZonaColor(rec.CodigoZona),
			}
			byZona[rec.CodigoZona] = z
		}
		z.Clientes++
		if !rec.HasCoords() {
			z.MissingCoords++
		}
	}

	out := make([]model.ZonaSummary, 0, len(byZona))
	for _, z := range byZona {
		out = append(out, *z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CodigoZona < out[j].CodigoZona })
	return out
}

// Center returns the mean coordinate of the given records, used to center
// the map viewport. ok is false when no record has coordinates.
func Center(records []model.Cliente) (lat, lng float64, ok bool) {
	n := 0
	for i := range records {
		if records[i].HasCoords() {
			lat += *records[i].Lat
			lng += *records[i].Lng
			n++
		}
	}
	if n == 0 {
		return 0, 0, false
	}
	return lat / float64(n), lng / float64(n), true
}

func toSet(vals []string) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}
