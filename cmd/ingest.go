package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmnbraulio/mapa-clientes/internal/dataset"
	"github.com/dmnbraulio/mapa-clientes/internal/store"
)

var (
	ingestCSV string
	ingestDB  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load a clean clientes CSV into the SQLite store",
	Long: `Reads a clean CSV produced by convert and replaces the contents of
the SQLite store with it, recording the import run. The serve command can
then query the store instead of re-reading the CSV.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		csvPath := ingestCSV
		if csvPath == "" {
			csvPath = cfg.Data.OutputFile
		}
		dbPath := ingestDB
		if dbPath == "" {
			dbPath = cfg.Store.Path
		}

		ds, err := dataset.Load(csvPath)
		if err != nil {
			return err
		}

		st, err := store.NewSQLite(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		imp, err := st.ReplaceClientes(ctx, csvPath, ds.All())
		if err != nil {
			return err
		}

		zap.L().Info("ingest complete",
			zap.String("import_id", imp.ID),
			zap.String("source", imp.SourceFile),
			zap.String("db", dbPath),
			zap.Int("rows", imp.RowCount),
			zap.Int("missing_coords", imp.MissingCoords),
		)
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestCSV, "csv", "", "clean CSV to ingest (default from config)")
	ingestCmd.Flags().StringVar(&ingestDB, "db", "", "SQLite database path (default from config)")
	rootCmd.AddCommand(ingestCmd)
}
