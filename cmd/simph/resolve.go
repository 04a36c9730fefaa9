package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fterenzani/simph"
	"github.com/fterenzani/simph/pkg/router"
)

func resolveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve a request path against the route table",
		Long: `Resolve a request path the way the server would, printing the
resulting page identifier, redirect, or error.

Examples:
  simph resolve /posts/page-3
  simph resolve "/archive/2024?draft=1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to simph.json (default: search upward)")

	return cmd
}

func runResolve(configPath, raw string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	app, err := simph.FromConfig(cfg, simph.Config{})
	if err != nil {
		return err
	}

	res, err := app.Router().Resolve(raw)
	if err != nil {
		var rerr *router.Error
		if errors.As(err, &rerr) {
			warn("%s -> %d %s", raw, rerr.HTTPStatus(), rerr.Kind)
			return nil
		}
		return err
	}

	if res.Redirect() {
		success("%s -> %d redirect to %s", raw, res.Status, res.Location)
		return nil
	}

	success("%s -> %s", raw, res.Identifier)
	for name, value := range res.Params {
		info(fmt.Sprintf("%s = %s", name, value))
	}
	return nil
}
