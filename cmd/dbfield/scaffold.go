package main

import (
	"encoding/json"
	"fmt"

	"github.com/softilium/dbfield"
	"github.com/softilium/dbfield/widgetpolicy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newScaffoldCmd() *cobra.Command {
	var search bool
	cmd := &cobra.Command{
		Use:   "scaffold TABLE",
		Short: "Print the form descriptor of a declared table as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			td, ok := cfg.TableDef(args[0])
			if !ok {
				return fmt.Errorf("table %s is not declared in %s", args[0], configFile)
			}
			table, err := td.Build()
			if err != nil {
				return err
			}
			store, err := loadWidgetPolicy(cfg, nil)
			if err != nil {
				return err
			}
			var resolver dbfield.WidgetResolver
			if store != nil {
				resolver = store
			}

			var form []*dbfield.FormField
			if search {
				form = table.ScaffoldSearchForm(resolver)
			} else {
				form = table.ScaffoldForm(resolver)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(form)
		},
	}
	cmd.Flags().BoolVar(&search, "search", false, "Print the search form instead of the edit form")
	return cmd
}

// loadWidgetPolicy returns nil when no widget policy is configured.
func loadWidgetPolicy(cfg *Config, logger *zap.SugaredLogger) (*widgetpolicy.Store, error) {
	if cfg.WidgetPolicy == "" {
		return nil, nil
	}
	store := widgetpolicy.NewStore(cfg.WidgetPolicy, logger)
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}
