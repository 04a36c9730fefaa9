package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fterenzani/simph"
)

func routesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the declared route table",
		Long: `Print the explicit routes from simph.json in match order, with
their parameter defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to simph.json (default: search upward)")

	return cmd
}

func runRoutes(cmd *cobra.Command, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	app, err := simph.FromConfig(cfg, simph.Config{})
	if err != nil {
		return err
	}

	routes := app.Router().Routes()
	if len(routes) == 0 {
		warn("No explicit routes declared; all requests use fallback derivation")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tIDENTIFIER\tDEFAULTS")
	for _, rt := range routes {
		defaults := ""
		for name, value := range rt.Defaults() {
			if defaults != "" {
				defaults += " "
			}
			defaults += name + "=" + value
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", rt.Pattern(), rt.Identifier(), defaults)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	info(fmt.Sprintf("%d routes; fallback derivation appends %q", len(routes), cfg.Ext))
	return nil
}
