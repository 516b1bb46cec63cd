package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	verbose    bool

	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	warningColor = color.New(color.FgYellow)
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dbfield",
		Short: "Typed column values: schema sync, renderings and scaffolded forms",
		Long: `dbfield manages tables declared in a YAML file.

It creates missing tables and columns, prints a value in every output
context, and serves form descriptors and records over HTTP.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "dbfield.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newScaffoldCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newTypesCmd())
	return rootCmd
}

func newLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
