package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/fterenzani/simph"
	"github.com/fterenzani/simph/internal/config"
	"github.com/fterenzani/simph/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		port       int
		host       string
		dev        bool
		metrics    bool
		tracing    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the page server",
		Long: `Start the HTTP server described by simph.json.

The server resolves every request through the route table, falls back
to filesystem-style page lookup, and renders pages from the configured
source.

Examples:
  simph serve
  simph serve --port=3000
  simph serve --dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, port, host, dev, metrics, tracing)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to simph.json (default: search upward)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from simph.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from simph.json)")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable live reload")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "Expose Prometheus metrics at /metrics")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "Trace resolutions with OpenTelemetry")

	return cmd
}

func runServe(configPath string, port int, host string, dev, metrics, tracing bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if port > 0 {
		cfg.Port = port
	}
	if host != "" {
		cfg.Host = host
	}
	if dev {
		cfg.Dev.LiveReload = true
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	pages, err := buildPages(cfg)
	if err != nil {
		return err
	}

	app, err := simph.FromConfig(cfg, simph.Config{
		Pages:   pages,
		Logger:  logger,
		Metrics: metrics,
		Tracing: tracing,
	})
	if err != nil {
		return err
	}

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RealIP)
	mux.Use(chimiddleware.Recoverer)
	if metrics {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Mount("/", app)

	printBanner()
	if cfg.Name != "" {
		info(cfg.Name)
	}
	success("Serving on %s", cfg.URL())
	if cfg.Dev.LiveReload {
		info("live reload at " + server.ReloadPath)

		watcher := server.NewWatcher(server.WatcherConfig{
			Paths: watchPaths(cfg),
		})
		watcher.OnChange(func(path string) {
			logger.Info("page changed", "file", path)
			app.Reload().NotifyReload(path)
		})
		go watcher.Start(context.Background())
		defer watcher.Stop()
	}

	srv := server.New(&server.ServerConfig{
		Address: cfg.Address(),
		Handler: mux,
		Logger:  logger,
	})
	return srv.Run()
}

// watchPaths resolves the configured watch paths against the config
// file's directory.
func watchPaths(cfg *config.Config) []string {
	paths := make([]string, 0, len(cfg.Dev.Watch))
	for _, p := range cfg.Dev.Watch {
		if !filepath.IsAbs(p) {
			p = filepath.Join(cfg.Dir(), p)
		}
		paths = append(paths, p)
	}
	return paths
}

// loadConfig loads simph.json from an explicit path or by searching
// upward from the working directory.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.LoadFromWorkingDir()
}

// buildPages constructs the S3 page source when configured, otherwise
// returns nil so the disk source is built from the config. The client
// reads region and static credentials from the standard AWS
// environment variables.
func buildPages(cfg *config.Config) (server.PageSource, error) {
	if !cfg.UseS3() {
		return nil, nil
	}

	opts := s3.Options{
		Region: os.Getenv("AWS_REGION"),
	}
	if key := os.Getenv("AWS_ACCESS_KEY_ID"); key != "" {
		secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
		token := os.Getenv("AWS_SESSION_TOKEN")
		opts.Credentials = aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     key,
				SecretAccessKey: secret,
				SessionToken:    token,
				Source:          "environment",
			}, nil
		})
	}
	if endpoint := os.Getenv("AWS_ENDPOINT_URL_S3"); endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}
	client := s3.New(opts)

	return server.NewS3Pages(client, cfg.Pages.S3.Bucket, cfg.Pages.S3.Prefix, cfg.Pages.Cache), nil
}
