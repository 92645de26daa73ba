package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmnbraulio/mapa-clientes/internal/dataset"
	"github.com/dmnbraulio/mapa-clientes/internal/model"
)

var statsCSV string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a per-zone summary of a clean clientes CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		csvPath := statsCSV
		if csvPath == "" {
			csvPath = cfg.Data.OutputFile
		}

		ds, err := dataset.Load(csvPath)
		if err != nil {
			return err
		}

		zonas, err := ds.ListZonas(cmd.Context())
		if err != nil {
			return err
		}

		formatZonaSummaries(os.Stdout, zonas)

		missing := 0
		for _, z := range zonas {
			missing += z.MissingCoords
		}
		fmt.Printf("\ntotal rows: %d | rows with absent coordinates: %d\n", ds.Len(), missing)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsCSV, "csv", "", "clean CSV to summarize (default from config)")
	rootCmd.AddCommand(statsCmd)
}

// formatZonaSummaries renders the per-zone table.
func formatZonaSummaries(out io.Writer, zonas []model.ZonaSummary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ZONA\tNOMBRE\tCLIENTES\tSIN COORDS\tCOLOR")
	for _, z := range zonas {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			z.CodigoZona, z.ZonaNombre, z.Clientes, z.MissingCoords, z.Color)
	}
	_ = w.Flush()
}
