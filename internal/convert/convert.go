// Package convert transforms a Google MyMaps CSV export into the normalized
// client-location dataset consumed by the map front-end.
package convert

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/dmnbraulio/mapa-clientes/internal/model"
)

// utf8BOM is prepended to the output so spreadsheet tools pick the right
// encoding for accented characters.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Summary reports the outcome of one conversion.
type Summary struct {
	RowsWritten       int
	RowsMissingCoords int
}

// ConvertFile reads a MyMaps export, converts it and writes the clean CSV.
// It fails before writing anything when the input cannot be read or no
// geometry column is found.
func ConvertFile(inputPath, outputPath string) (Summary, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return Summary{}, eris.Wrapf(err, "convert: read input %s", inputPath)
	}

	header, rows, err := parseCSV(decodeText(data))
	if err != nil {
		return Summary{}, err
	}

	records, summary, err := Convert(header, rows)
	if err != nil {
		return Summary{}, err
	}

	if err := WriteClean(records, outputPath); err != nil {
		return Summary{}, err
	}

	return summary, nil
}

// decodeText decodes a whole input file: UTF-8 when the bytes are valid
// UTF-8, Latin-1 otherwise. One encoding is chosen for the entire file,
// never per cell. A leading UTF-8 BOM is stripped.
func decodeText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Latin-1 decoding cannot fail; keep the raw bytes if it ever does.
		return string(data)
	}
	return string(decoded)
}

// parseCSV splits the decoded text into header and data rows.
func parseCSV(text string) ([]string, [][]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, eris.Wrap(err, "convert: parse csv")
	}
	if len(records) == 0 {
		return nil, nil, eris.New("convert: input has no header row")
	}
	return records[0], records[1:], nil
}

// Convert maps every input row to exactly one clean record, in order. Rows
// whose geometry fails to parse are kept with absent coordinates; only a
// missing geometry column is fatal.
func Convert(header []string, rows [][]string) ([]model.Cliente, Summary, error) {
	geomIdx, ok := locateGeometryColumn(header, rows)
	if !ok {
		return nil, Summary{}, eris.Errorf(
			"convert: no WKT/POINT column found, available columns: %s",
			strings.Join(header, ", "))
	}

	nombreIdx, _ := locateNombreColumn(header, geomIdx)

	descIdx, hasDesc := locateDescripcionColumn(header)
	if !hasDesc {
		zap.L().Warn("convert: no description column found, proceeding without parsed description")
	}

	dirIdx, hasDir := locateDireccionColumn(header)

	records := make([]model.Cliente, 0, len(rows))
	var summary Summary

	for _, row := range rows {
		point := ExtractPoint(getCol(row, geomIdx))
		if point == nil {
			summary.RowsMissingCoords++
		}

		botica := RepairEncoding(strings.TrimSpace(getCol(row, nombreIdx)))

		desc := ""
		if hasDesc {
			desc = RepairEncoding(getCol(row, descIdx))
		}
		parts := SplitDescription(desc)

		direccion := ""
		if hasDir {
			direccion = getCol(row, dirIdx)
		}

		rec := model.Cliente{
			CodigoZona:          parts.CodigoZona,
			ZonaNombre:          parts.ZonaNombre,
			CodigoCliente:       parts.CodigoCliente,
			NombreCliente:       parts.NombreCliente,
			Botica:              botica,
			Referencias:         parts.Referencias,
			Direccion:           direccion,
			DescripcionOriginal: desc,
		}
		if point != nil {
			rec.Lat, rec.Lng = &point.Lat, &point.Lng
		}

		records = append(records, rec)
		summary.RowsWritten++
	}

	return records, summary, nil
}

// WriteClean writes clean records as UTF-8-with-BOM CSV in the fixed column
// order, creating the destination directory when needed.
func WriteClean(records []model.Cliente, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrap(err, "convert: create output dir")
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "convert: create output file")
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return eris.Wrap(err, "convert: write BOM")
	}

	w := csv.NewWriter(f)
	if err := w.Write(model.CleanColumns); err != nil {
		return eris.Wrap(err, "convert: write header")
	}

	for i := range records {
		if err := w.Write(cleanRow(&records[i])); err != nil {
			return eris.Wrap(err, "convert: write row")
		}
	}

	w.Flush()
	return eris.Wrap(w.Error(), "convert: flush output")
}

// cleanRow maps a record to the fixed output column order.
func cleanRow(r *model.Cliente) []string {
	return []string{
		r.CodigoZona,
		r.ZonaNombre,
		r.CodigoCliente,
		r.NombreCliente,
		r.Botica,
		r.Referencias,
		r.Direccion,
		formatCoord(r.Lat),
		formatCoord(r.Lng),
		r.DescripcionOriginal,
	}
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
