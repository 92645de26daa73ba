package convert

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/dmnbraulio/mapa-clientes/internal/model"
)

// ExportXLSX writes clean records to an XLSX workbook with the same column
// order as the clean CSV, for users working in spreadsheet tools.
func ExportXLSX(records []model.Cliente, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Clientes")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	headerRow := sheet.AddRow()
	for _, col := range model.CleanColumns {
		headerRow.AddCell().Value = col
	}

	for i := range records {
		row := sheet.AddRow()
		for _, val := range cleanRow(&records[i]) {
			row.AddCell().Value = val
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "xlsx: save file")
	}
	return nil
}
