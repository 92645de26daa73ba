// Package store persists the clean client dataset in SQLite so the API
// server can query it without re-reading the CSV.
package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/dmnbraulio/mapa-clientes/internal/dataset"
	"github.com/dmnbraulio/mapa-clientes/internal/model"
)

// SQLiteStore implements dataset.Source using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS imports (
	id             TEXT PRIMARY KEY,
	source_file    TEXT NOT NULL,
	row_count      INTEGER NOT NULL,
	missing_coords INTEGER NOT NULL,
	imported_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS clientes (
	import_id            TEXT NOT NULL REFERENCES imports(id),
	codigo_zona          TEXT NOT NULL,
	zona_nombre          TEXT NOT NULL,
	codigo_cliente       TEXT NOT NULL,
	nombre_cliente       TEXT NOT NULL,
	botica               TEXT NOT NULL,
	referencias          TEXT NOT NULL,
	direccion            TEXT NOT NULL,
	lat                  REAL,
	lng                  REAL,
	descripcion_original TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_clientes_codigo_zona ON clientes(codigo_zona);
CREATE INDEX IF NOT EXISTS idx_clientes_botica ON clientes(botica);
CREATE INDEX IF NOT EXISTS idx_imports_imported_at ON imports(imported_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Import records one ingest run.
type Import struct {
	ID            string
	SourceFile    string
	RowCount      int
	MissingCoords int
	ImportedAt    time.Time
}

// ReplaceClientes records an import and replaces the full clientes table with
// the given records in one transaction. The dataset is a static snapshot, so
// each ingest supersedes the previous one entirely.
func (s *SQLiteStore) ReplaceClientes(ctx context.Context, sourceFile string, records []model.Cliente) (*Import, error) {
	imp := &Import{
		ID:         uuid.New().String(),
		SourceFile: sourceFile,
		RowCount:   len(records),
		ImportedAt: time.Now().UTC(),
	}
	for i := range records {
		if !records[i].HasCoords() {
			imp.MissingCoords++
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, source_file, row_count, missing_coords, imported_at) VALUES (?, ?, ?, ?, ?)`,
		imp.ID, imp.SourceFile, imp.RowCount, imp.MissingCoords, imp.ImportedAt,
	); err != nil {
		return nil, eris.Wrap(err, "sqlite: insert import")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM clientes`); err != nil {
		return nil, eris.Wrap(err, "sqlite: clear clientes")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO clientes
		(import_id, codigo_zona, zona_nombre, codigo_cliente, nombre_cliente,
		 botica, referencias, direccion, lat, lng, descripcion_original)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		if _, err := stmt.ExecContext(ctx,
			imp.ID, r.CodigoZona, r.ZonaNombre, r.CodigoCliente, r.NombreCliente,
			r.Botica, r.Referencias, r.Direccion, nullFloat(r.Lat), nullFloat(r.Lng),
			r.DescripcionOriginal,
		); err != nil {
			return nil, eris.Wrapf(err, "sqlite: insert cliente %s", r.CodigoCliente)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "sqlite: commit")
	}
	return imp, nil
}

// LatestImport returns the most recent ingest run, or nil when none exists.
func (s *SQLiteStore) LatestImport(ctx context.Context) (*Import, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source_file, row_count, missing_coords, imported_at
		 FROM imports ORDER BY imported_at DESC LIMIT 1`)

	var imp Import
	err := row.Scan(&imp.ID, &imp.SourceFile, &imp.RowCount, &imp.MissingCoords, &imp.ImportedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query latest import")
	}
	return &imp, nil
}

// ListClientes returns plottable records matching the filter, mirroring the
// CSV-backed dataset: no zones selected means an empty result.
func (s *SQLiteStore) ListClientes(ctx context.Context, f dataset.Filter) ([]model.Cliente, error) {
	if len(f.Zonas) == 0 {
		return nil, nil
	}

	query := `SELECT codigo_zona, zona_nombre, codigo_cliente, nombre_cliente,
		botica, referencias, direccion, lat, lng, descripcion_original
		FROM clientes
		WHERE lat IS NOT NULL AND lng IS NOT NULL
		AND codigo_zona IN (` + placeholders(len(f.Zonas)) + `)`

	args := make([]any, 0, len(f.Zonas)+len(f.Boticas))
	for _, z := range f.Zonas {
		args = append(args, z)
	}
	if len(f.Boticas) > 0 {
		query += ` AND botica IN (` + placeholders(len(f.Boticas)) + `)`
		for _, b := range f.Boticas {
			args = append(args, b)
		}
	}
	query += ` ORDER BY codigo_zona, botica`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query clientes")
	}
	defer rows.Close()

	var out []model.Cliente
	for rows.Next() {
		var rec model.Cliente
		var lat, lng sql.NullFloat64
		if err := rows.Scan(
			&rec.CodigoZona, &rec.ZonaNombre, &rec.CodigoCliente, &rec.NombreCliente,
			&rec.Botica, &rec.Referencias, &rec.Direccion, &lat, &lng,
			&rec.DescripcionOriginal,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan cliente")
		}
		if lat.Valid {
			rec.Lat = &lat.Float64
		}
		if lng.Valid {
			rec.Lng = &lng.Float64
		}
		out = append(out, rec)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate clientes")
}

// ListZonas summarizes all zones, including rows without coordinates.
func (s *SQLiteStore) ListZonas(ctx context.Context) ([]model.ZonaSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT codigo_zona, zona_nombre, COUNT(*),
			SUM(CASE WHEN lat IS NULL OR lng IS NULL THEN 1 ELSE 0 END)
		 FROM clientes
		 GROUP BY codigo_zona, zona_nombre
		 ORDER BY codigo_zona`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query zonas")
	}
	defer rows.Close()

	var out []model.ZonaSummary
	for rows.Next() {
		var z model.ZonaSummary
		if err := rows.Scan(&z.CodigoZona, &z.ZonaNombre, &z.Clientes, &z.MissingCoords); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan zona")
		}
		z.Color = model.ZonaColor(z.CodigoZona)
		out = append(out, z)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate zonas")
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
