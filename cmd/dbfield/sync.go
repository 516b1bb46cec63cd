package main

import (
	"context"
	"fmt"

	"github.com/softilium/dbfield"
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Create missing tables and columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			conn, err := dbfield.Open(ctx, cfg.Driver, cfg.DSN)
			if err != nil {
				return err
			}
			defer func() {
				_ = conn.Close()
			}()
			conn.Logger = logger

			tables, err := cfg.BuildTables()
			if err != nil {
				return err
			}
			if len(tables) == 0 {
				warningColor.Fprintln(cmd.OutOrStdout(), "No tables declared")
				return nil
			}
			if err := syncTables(ctx, dbfield.NewSchemaManager(conn, logger), tables); err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "Synced %d tables on %s\n", len(tables), conn.Dialect())
			return nil
		},
	}
}

func syncTables(ctx context.Context, s dbfield.SchemaRequirer, tables []*dbfield.Table) error {
	for _, t := range tables {
		if err := t.RequireTable(ctx, s); err != nil {
			return fmt.Errorf("sync %s: %w", t.Name, err)
		}
	}
	return nil
}
