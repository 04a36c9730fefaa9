package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fterenzani/simph/internal/config"
	"github.com/fterenzani/simph/internal/errors"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>{{.Identifier}}</title></head>
<body>
<h1>It works</h1>
<p>Rendered for {{.Path}}</p>
</body>
</html>
`

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a new simph project",
		Long: `Create simph.json and a starter pages directory.

Examples:
  simph init
  simph init myblog`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing simph.json")

	return cmd
}

func runInit(dir string, force bool) error {
	if config.Exists(dir) && !force {
		return errors.New("E301").
			WithDetail("A simph.json already exists in " + dir).
			WithSuggestion("Pass --force to overwrite it")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	cfg := config.New()
	cfg.Name = filepath.Base(absOrSelf(dir))
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		return err
	}
	success("Created %s", config.ConfigFileName)

	pagesDir := filepath.Join(dir, cfg.Pages.Dir)
	if err := os.MkdirAll(pagesDir, 0o755); err != nil {
		return err
	}
	indexPath := filepath.Join(pagesDir, "index"+cfg.Ext)
	if _, err := os.Stat(indexPath); os.IsNotExist(err) {
		if err := os.WriteFile(indexPath, []byte(samplePage), 0o644); err != nil {
			return err
		}
		success("Created %s", filepath.Join(cfg.Pages.Dir, "index"+cfg.Ext))
	}

	info("Run 'simph serve' to start the server")
	return nil
}

func absOrSelf(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
