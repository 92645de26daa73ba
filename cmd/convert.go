package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmnbraulio/mapa-clientes/internal/convert"
	"github.com/dmnbraulio/mapa-clientes/internal/dataset"
)

var (
	convertInput     string
	convertOutput    string
	convertBackupDir string
	convertNoBackup  bool
	convertXLSX      string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a MyMaps CSV export into the clean client dataset",
	Long: `Reads a Google MyMaps CSV export, extracts coordinates from the WKT
column, repairs mojibake, parses the composite description field and writes
the normalized clientes CSV (UTF-8 with BOM).

A timestamped backup of the raw export is copied to the backup directory
before conversion unless --no-backup is given.

Examples:
  mapa-clientes convert
  mapa-clientes convert --input export.csv --output data/clientes.csv
  mapa-clientes convert --xlsx data/clientes.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		input := convertInput
		if input == "" {
			input = cfg.Data.InputFile
		}
		output := convertOutput
		if output == "" {
			output = cfg.Data.OutputFile
		}
		backupDir := convertBackupDir
		if backupDir == "" {
			backupDir = cfg.Data.BackupDir
		}

		if _, err := os.Stat(input); err != nil {
			return eris.Wrapf(err, "convert: input file not found: %s", input)
		}

		if !convertNoBackup {
			backupPath, err := backupInput(input, backupDir)
			if err != nil {
				return err
			}
			zap.L().Info("backup created", zap.String("path", backupPath))
		}

		summary, err := convert.ConvertFile(input, output)
		if err != nil {
			return err
		}

		zap.L().Info("conversion complete",
			zap.String("input", input),
			zap.String("output", output),
			zap.Int("rows_written", summary.RowsWritten),
			zap.Int("rows_missing_coords", summary.RowsMissingCoords),
		)
		fmt.Printf("clean file written to %s\n", output)
		fmt.Printf("rows written: %d | rows with absent coordinates: %d\n",
			summary.RowsWritten, summary.RowsMissingCoords)

		if convertXLSX != "" {
			ds, err := dataset.Load(output)
			if err != nil {
				return err
			}
			if err := convert.ExportXLSX(ds.All(), convertXLSX); err != nil {
				return err
			}
			zap.L().Info("xlsx export written", zap.String("path", convertXLSX))
		}

		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertInput, "input", "", "MyMaps CSV export (default from config)")
	convertCmd.Flags().StringVar(&convertOutput, "output", "", "clean CSV destination (default from config)")
	convertCmd.Flags().StringVar(&convertBackupDir, "backup-dir", "", "directory for raw-export backups (default from config)")
	convertCmd.Flags().BoolVar(&convertNoBackup, "no-backup", false, "skip the raw-export backup copy")
	convertCmd.Flags().StringVar(&convertXLSX, "xlsx", "", "also write the clean records to this XLSX file")
	rootCmd.AddCommand(convertCmd)
}

// backupInput copies the raw export into backupDir with a timestamped name
// before conversion touches anything.
func backupInput(inputPath, backupDir string) (string, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", eris.Wrap(err, "convert: create backup dir")
	}

	name := fmt.Sprintf("clientes_original_%s.csv", time.Now().Format("20060102_150405"))
	backupPath := filepath.Join(backupDir, name)

	src, err := os.Open(inputPath)
	if err != nil {
		return "", eris.Wrap(err, "convert: open input for backup")
	}
	defer src.Close()

	dst, err := os.Create(backupPath)
	if err != nil {
		return "", eris.Wrap(err, "convert: create backup file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", eris.Wrap(err, "convert: copy backup")
	}

	return backupPath, nil
}
