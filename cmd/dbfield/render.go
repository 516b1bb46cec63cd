package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/softilium/dbfield"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render TYPE VALUE",
		Short: "Print a value in every output context",
		Example: `  dbfield render Bigint 1234567
  dbfield render Varchar "Tom's <b>"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := dbfield.Create(args[0], args[1])
			if err != nil {
				return err
			}
			tw := tablewriter.NewWriter(cmd.OutOrStdout())
			tw.SetHeader([]string{"Context", "Value"})
			tw.SetAutoWrapText(false)
			tw.SetBorder(false)
			for _, r := range dbfield.Renderings(f) {
				tw.Append([]string{infoColor.Sprint(r.Context), r.Value})
			}
			tw.Render()
			return nil
		},
	}
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered field types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range dbfield.RegisteredTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
