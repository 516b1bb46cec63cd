package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/softilium/dbfield"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var addr string
	var noSync bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve form descriptors, renderings and records over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Listen = addr
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var conn *dbfield.Connection
			if cfg.DSN != "" {
				conn, err = dbfield.Open(ctx, cfg.Driver, cfg.DSN)
				if err != nil {
					return err
				}
				defer func() {
					_ = conn.Close()
				}()
				conn.Logger = logger
				if !noSync {
					tables, err := cfg.BuildTables()
					if err != nil {
						return err
					}
					if err := syncTables(ctx, dbfield.NewSchemaManager(conn, logger), tables); err != nil {
						return err
					}
				}
			} else {
				warningColor.Fprintln(cmd.ErrOrStderr(), "No dsn configured, records are disabled")
			}

			store, err := loadWidgetPolicy(cfg, logger)
			if err != nil {
				return err
			}
			var resolver dbfield.WidgetResolver
			if store != nil {
				resolver = store
				go store.Watch(ctx)
			}

			router := newRouter(cfg, conn, resolver, logger)
			srv := &http.Server{
				Addr:              cfg.Listen,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			infoColor.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", cfg.Listen)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
			successColor.Fprintln(cmd.OutOrStdout(), "Server stopped")
			return nil
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address, overrides the config")
	cmd.Flags().BoolVar(&noSync, "no-sync", false, "Skip creating missing tables and columns on start")
	return cmd
}

// newRouter mounts the scaffold API at /api/scaffold. resolver may be nil.
func newRouter(cfg *Config, conn *dbfield.Connection, resolver dbfield.WidgetResolver, logger *zap.SugaredLogger) *mux.Router {
	apiCfg := dbfield.CreateScaffoldApiConfig(cfg.Tables...)
	apiCfg.Conn = conn
	apiCfg.DefaultPageSize = cfg.PageSize
	apiCfg.Resolver = resolver
	apiCfg.BeforeMiddleware = func(w http.ResponseWriter, r *http.Request) bool {
		logger.Debugw("scaffold request", "method", r.Method, "url", r.URL.String())
		return true
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/scaffold", dbfield.HandleScaffoldApi(apiCfg)).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/api/types", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dbfield.RegisteredTypes())
	}).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	return router
}
