package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fterenzani/simph"
	"github.com/fterenzani/simph/internal/errors"
)

func urlCmd() *cobra.Command {
	var (
		configPath string
		absolute   bool
		scheme     string
	)

	cmd := &cobra.Command{
		Use:   "url <identifier> [name=value...]",
		Short: "Generate the URL for a page identifier",
		Long: `Generate the canonical URL for a page identifier, optionally
filling route parameters.

Examples:
  simph url posts/index.html
  simph url posts/index.html page=3
  simph url home --absolute`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runURL(cmd, configPath, args[0], args[1:], absolute, scheme)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to simph.json (default: search upward)")
	cmd.Flags().BoolVarP(&absolute, "absolute", "a", false, "Print an absolute URL using the configured host")
	cmd.Flags().StringVar(&scheme, "scheme", "http", "Scheme for absolute URLs")

	return cmd
}

func runURL(cmd *cobra.Command, configPath, identifier string, pairs []string, absolute bool, scheme string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	app, err := simph.FromConfig(cfg, simph.Config{})
	if err != nil {
		return err
	}

	values := simph.Params{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return errors.New("E301").
				WithDetail("Parameters must be name=value, got " + pair)
		}
		values[name] = value
	}

	var out string
	if absolute {
		out, err = app.URLFor(identifier, values, scheme)
	} else {
		out, err = app.PathFor(identifier, values)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
