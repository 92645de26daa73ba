package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmnbraulio/mapa-clientes/internal/dataset"
	"github.com/dmnbraulio/mapa-clientes/internal/model"
	"github.com/dmnbraulio/mapa-clientes/internal/store"
)

var (
	servePort int
	serveCSV  string
	serveDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the clean dataset over HTTP for the map front-end",
	Long: `Starts an HTTP API over the clean dataset.

  GET /health
  GET /api/zonas                       zone summaries (code, name, counts, color)
  GET /api/clientes?zona=SU01&zona=SU02&botica=NOMBRE

Filter semantics match the map sidebar: without at least one zona parameter
the client list is empty; botica parameters narrow within the selected
zones. Rows without coordinates are never served.

The dataset comes from the clean CSV by default, or from the SQLite store
when --db is given (after mapa-clientes ingest).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var src dataset.Source
		if serveDB != "" {
			st, err := store.NewSQLite(serveDB)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Migrate(ctx); err != nil {
				return err
			}
			src = st
			zap.L().Info("serving from sqlite store", zap.String("db", serveDB))
		} else {
			csvPath := serveCSV
			if csvPath == "" {
				csvPath = cfg.Data.OutputFile
			}
			ds, err := dataset.Load(csvPath)
			if err != nil {
				return err
			}
			src = ds
			zap.L().Info("serving from csv", zap.String("path", csvPath), zap.Int("rows", ds.Len()))
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newServeMux(src),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveCSV, "csv", "", "clean CSV to serve (default from config)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "serve from this SQLite store instead of the CSV")
	rootCmd.AddCommand(serveCmd)
}

// newServeMux builds the API routes over a dataset source.
func newServeMux(src dataset.Source) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/zonas", func(w http.ResponseWriter, r *http.Request) {
		zonas, err := src.ListZonas(r.Context())
		if err != nil {
			zap.L().Error("list zonas", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		if zonas == nil {
			zonas = []model.ZonaSummary{}
		}
		writeJSON(w, http.StatusOK, zonas)
	})

	mux.HandleFunc("GET /api/clientes", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := dataset.Filter{
			Zonas:   q["zona"],
			Boticas: q["botica"],
		}

		clientes, err := src.ListClientes(r.Context(), filter)
		if err != nil {
			zap.L().Error("list clientes", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		if clientes == nil {
			clientes = []model.Cliente{}
		}

		resp := clientesResponse{Count: len(clientes), Clientes: clientes}
		if lat, lng, ok := dataset.Center(clientes); ok {
			resp.Center = &centerPoint{Lat: lat, Lng: lng}
		}
		writeJSON(w, http.StatusOK, resp)
	})

	return mux
}

type clientesResponse struct {
	Count    int             `json:"count"`
	Center   *centerPoint    `json:"center,omitempty"`
	Clientes []model.Cliente `json:"clientes"`
}

type centerPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
