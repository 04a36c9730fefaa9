package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fterenzani/simph/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "simph.json"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultExt is the default page file extension.
	DefaultExt = ".html"

	// DefaultPagesDir is the default pages directory.
	DefaultPagesDir = "pages"
)

// Config represents the complete simph.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Host is the host to bind and the authority used by generated
	// absolute URLs.
	Host string `json:"host,omitempty"`

	// Port is the server port.
	Port int `json:"port,omitempty"`

	// WebRoot is the path prefix the application is mounted under,
	// e.g. "/blog". Empty when mounted at the root.
	WebRoot string `json:"webRoot,omitempty"`

	// FrontController is the script segment to strip after the web
	// root, e.g. "index.cgi". Usually empty behind a rewriting server.
	FrontController string `json:"frontController,omitempty"`

	// Ext is the page file extension appended during fallback
	// derivation.
	Ext string `json:"ext,omitempty"`

	// Pages configures where page files live.
	Pages PagesConfig `json:"pages,omitempty"`

	// Routes declares the explicit route table in priority order.
	Routes []RouteConfig `json:"routes,omitempty"`

	// Defaults declares application-wide parameter definitions applied
	// to every route.
	Defaults []ParamConfig `json:"defaults,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PagesConfig configures the page source.
type PagesConfig struct {
	// Dir is the directory containing page files.
	Dir string `json:"dir,omitempty"`

	// Cache enables template caching across requests.
	Cache bool `json:"cache,omitempty"`

	// S3 serves pages from an S3 bucket instead of the local
	// filesystem when Bucket is set.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config configures an S3-backed page source.
type S3Config struct {
	// Bucket is the S3 bucket name.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the key prefix page identifiers are appended to.
	Prefix string `json:"prefix,omitempty"`
}

// RouteConfig declares one explicit route.
type RouteConfig struct {
	// Pattern is the route pattern, e.g. "/posts(/page-:page)".
	Pattern string `json:"pattern"`

	// Identifier is the page identifier the pattern maps to.
	Identifier string `json:"identifier"`

	// Params refines the pattern's placeholders.
	Params []ParamConfig `json:"params,omitempty"`
}

// ParamConfig refines a single placeholder.
type ParamConfig struct {
	// Name is the placeholder name without the leading colon.
	Name string `json:"name"`

	// Expr overrides the placeholder's regular expression fragment.
	Expr string `json:"expr,omitempty"`

	// Value is the placeholder's default value.
	Value string `json:"value,omitempty"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// LiveReload enables the WebSocket live-reload endpoint.
	LiveReload bool `json:"liveReload,omitempty"`

	// Watch contains paths to watch for changes.
	Watch []string `json:"watch,omitempty"`
}

// New returns a configuration populated with defaults.
func New() *Config {
	return &Config{
		Host: DefaultHost,
		Port: DefaultPort,
		Ext:  DefaultExt,
		Pages: PagesConfig{
			Dir:   DefaultPagesDir,
			Cache: true,
		},
		Dev: DevConfig{
			LiveReload: true,
			Watch:      []string{DefaultPagesDir},
		},
	}
}

// Load reads configuration from the specified directory. It looks for
// simph.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E001").
				WithDetail("No simph.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'simph init' to create one")
		}
		return nil, errors.New("E002").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E002").Wrap(err).
			WithSuggestion("Check simph.json for trailing commas or comments")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E002").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E002").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Ext == "" {
		c.Ext = DefaultExt
	}
	if c.Pages.Dir == "" {
		c.Pages.Dir = DefaultPagesDir
	}
	if c.Dev.Watch == nil {
		c.Dev.Watch = []string{c.Pages.Dir}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.New("E003").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Port))
	}
	if c.Ext != "" && !strings.HasPrefix(c.Ext, ".") {
		return errors.New("E003").
			WithDetail("Ext must start with '.', got " + strconv.Quote(c.Ext))
	}
	if c.WebRoot != "" && !strings.HasPrefix(c.WebRoot, "/") {
		return errors.New("E003").
			WithDetail("WebRoot must start with '/', got " + strconv.Quote(c.WebRoot))
	}
	for _, rt := range c.Routes {
		if rt.Pattern == "" || rt.Identifier == "" {
			return errors.New("E003").
				WithDetail("Every route needs both a pattern and an identifier")
		}
	}
	return nil
}

// Address returns the listen address string.
func (c *Config) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// URL returns the base URL for the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// PagesPath returns the absolute path to the pages directory.
func (c *Config) PagesPath() string {
	if filepath.IsAbs(c.Pages.Dir) {
		return c.Pages.Dir
	}
	return filepath.Join(c.Dir(), c.Pages.Dir)
}

// UseS3 reports whether pages are served from S3.
func (c *Config) UseS3() bool {
	return c.Pages.S3.Bucket != ""
}

// Exists reports whether a simph.json is present in dir.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing simph.json, or an error if not
// found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E001").
				WithDetail("No simph.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'simph init' to create one")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working
// directory, walking up to the project root.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
