package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fterenzani/simph/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬┌┬┐┌─┐┬ ┬
  └─┐││││├─┘├─┤
  └─┘┴┴ ┴┴  ┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "simph",
		Short: "A tiny page server with bidirectional routing",
		Long: `simph serves a directory of page templates behind a two-phase router.

Explicit route patterns are matched first; anything else falls back to
a filesystem-style derivation from the request path. Canonical URLs are
enforced with permanent redirects, so every page has exactly one
address.

  • Declarative route patterns with optional segments
  • URL generation from the same patterns
  • Canonicalization redirects
  • Pages on disk or in S3
  • Live reload development server`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		initCmd(),
		serveCmd(),
		routesCmd(),
		resolveCmd(),
		urlCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the simph ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
