package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vango-dev/markup/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "markup.json"

	// TOMLFileName is the name of the TOML configuration file.
	TOMLFileName = "markup.toml"

	// DefaultPort is the default preview server port.
	DefaultPort = 4000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultSourceDir is the default document directory.
	DefaultSourceDir = "pages"

	// DefaultOutput is the default render output directory.
	DefaultOutput = "dist"

	// DefaultCacheTTL is the default lifetime of cached renders.
	DefaultCacheTTL = 10 * time.Minute
)

// Cache drivers.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config represents the complete markup configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" toml:"name,omitempty"`

	// Source contains document source settings.
	Source SourceConfig `json:"source" toml:"source"`

	// Render contains output formatting settings.
	Render RenderConfig `json:"render" toml:"render"`

	// Build contains batch render settings.
	Build BuildConfig `json:"build" toml:"build"`

	// Serve contains preview server settings.
	Serve ServeConfig `json:"serve" toml:"serve"`

	// Cache contains render cache settings.
	Cache CacheConfig `json:"cache" toml:"cache"`

	// Publish contains upload settings.
	Publish PublishConfig `json:"publish" toml:"publish"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// SourceConfig contains document source settings.
type SourceConfig struct {
	// Dir is the directory holding document files.
	Dir string `json:"dir,omitempty" toml:"dir,omitempty"`
}

// RenderConfig mirrors render.RendererConfig.
type RenderConfig struct {
	// Pretty enables indented output.
	Pretty bool `json:"pretty,omitempty" toml:"pretty,omitempty"`

	// Indent is the indentation unit in pretty mode.
	Indent string `json:"indent,omitempty" toml:"indent,omitempty"`

	// OmitDoctype suppresses the doctype before documents.
	OmitDoctype bool `json:"omitDoctype,omitempty" toml:"omitDoctype,omitempty"`
}

// BuildConfig contains batch render settings.
type BuildConfig struct {
	// Output is the directory rendered files are written to.
	Output string `json:"output,omitempty" toml:"output,omitempty"`
}

// ServeConfig contains preview server settings.
type ServeConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" toml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" toml:"port,omitempty"`

	// Live enables the live preview websocket.
	Live bool `json:"live,omitempty" toml:"live,omitempty"`

	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool `json:"metrics,omitempty" toml:"metrics,omitempty"`

	// Tracing enables OpenTelemetry spans for requests.
	Tracing bool `json:"tracing,omitempty" toml:"tracing,omitempty"`

	// PollInterval is how often document files are checked for changes
	// (e.g., "500ms").
	PollInterval string `json:"pollInterval,omitempty" toml:"pollInterval,omitempty"`
}

// CacheConfig contains render cache settings.
type CacheConfig struct {
	// Driver is "none", "memory" or "redis".
	Driver string `json:"driver,omitempty" toml:"driver,omitempty"`

	// URL is the redis URL when Driver is "redis".
	URL string `json:"url,omitempty" toml:"url,omitempty"`

	// TTL is the lifetime of cached entries (e.g., "10m").
	TTL string `json:"ttl,omitempty" toml:"ttl,omitempty"`

	// MaxEntries bounds the memory cache.
	MaxEntries int `json:"maxEntries,omitempty" toml:"maxEntries,omitempty"`
}

// PublishConfig contains upload settings.
type PublishConfig struct {
	// Bucket is the S3 bucket name.
	Bucket string `json:"bucket,omitempty" toml:"bucket,omitempty"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty" toml:"prefix,omitempty"`

	// Region is the AWS region.
	Region string `json:"region,omitempty" toml:"region,omitempty"`

	// Endpoint overrides the S3 endpoint for compatible stores.
	Endpoint string `json:"endpoint,omitempty" toml:"endpoint,omitempty"`

	// CacheControl is set on every uploaded object.
	CacheControl string `json:"cacheControl,omitempty" toml:"cacheControl,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Source: SourceConfig{Dir: DefaultSourceDir},
		Render: RenderConfig{Indent: "  "},
		Build:  BuildConfig{Output: DefaultOutput},
		Serve: ServeConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			Live:         true,
			PollInterval: "500ms",
		},
		Cache: CacheConfig{
			Driver:     CacheMemory,
			TTL:        DefaultCacheTTL.String(),
			MaxEntries: 256,
		},
	}
}

// Load reads configuration from the specified directory. It looks for
// markup.toml, then markup.json.
func Load(dir string) (*Config, error) {
	if path := filepath.Join(dir, TOMLFileName); fileExists(path) {
		return LoadFile(path)
	}
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("M402").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path)).
				WithSuggestion("Create markup.toml or markup.json, or run without a config to use defaults")
		}
		return nil, errors.New("M402").Wrap(err)
	}

	cfg := New()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, errors.New("M402").
				WithLocation(path, tomlLine(err), 0).
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that " + filepath.Base(path) + " is valid TOML")
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("M402").
			WithLocation(path, 0, 0).
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

func tomlLine(err error) int {
	if perr, ok := err.(toml.ParseError); ok {
		return perr.Position.Line
	}
	return 0
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as TOML or JSON by
// extension.
func (c *Config) SaveTo(path string) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return errors.New("M402").Wrap(err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = json.MarshalIndent(c, "", "  ")
		if err != nil {
			return errors.New("M402").Wrap(err)
		}
		data = append(data, '\n')
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("M402").Wrap(err)
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
		return "."
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()
	if c.Source.Dir == "" {
		c.Source.Dir = d.Source.Dir
	}
	if c.Render.Indent == "" {
		c.Render.Indent = d.Render.Indent
	}
	if c.Build.Output == "" {
		c.Build.Output = d.Build.Output
	}
	if c.Serve.Host == "" {
		c.Serve.Host = d.Serve.Host
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = d.Serve.Port
	}
	if c.Serve.PollInterval == "" {
		c.Serve.PollInterval = d.Serve.PollInterval
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = d.Cache.Driver
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = d.Cache.TTL
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = d.Cache.MaxEntries
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New("M401").
			WithDetail("serve.port must be between 0 and 65535")
	}
	if _, err := time.ParseDuration(c.Serve.PollInterval); err != nil {
		return errors.New("M401").
			WithDetail("serve.pollInterval is not a duration: " + err.Error()).
			WithExample(`pollInterval = "500ms"`)
	}
	switch c.Cache.Driver {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.URL == "" {
			return errors.New("M401").
				WithDetail("cache.url is required for the redis driver").
				WithExample(`url = "redis://localhost:6379/0"`)
		}
	default:
		return errors.New("M401").
			WithDetail("cache.driver must be one of none, memory, redis; got " + strconv.Quote(c.Cache.Driver))
	}
	if ttl, err := time.ParseDuration(c.Cache.TTL); err != nil || ttl < 0 {
		return errors.New("M401").
			WithDetail("cache.ttl must be a non-negative duration").
			WithExample(`ttl = "10m"`)
	}
	if c.Cache.MaxEntries < 0 {
		return errors.New("M401").WithDetail("cache.maxEntries must not be negative")
	}
	if strings.HasPrefix(c.Publish.Prefix, "/") {
		return errors.New("M401").
			WithDetail("publish.prefix must not start with a slash").
			WithSuggestion("Use " + strconv.Quote(strings.TrimLeft(c.Publish.Prefix, "/")))
	}
	return nil
}

// ServeAddress returns the address string for the preview server.
func (c *Config) ServeAddress() string {
	return c.Serve.Host + ":" + strconv.Itoa(c.Serve.Port)
}

// ServeURL returns the full URL for the preview server.
func (c *Config) ServeURL() string {
	return "http://" + c.ServeAddress()
}

// CacheTTL returns the parsed cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return DefaultCacheTTL
	}
	return ttl
}

// PollInterval returns the parsed file poll interval.
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Serve.PollInterval)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

// SourcePath returns the absolute path to the document directory.
func (c *Config) SourcePath() string {
	return c.resolve(c.Source.Dir)
}

// OutputPath returns the absolute path to the render output directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.Build.Output)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	return fileExists(filepath.Join(dir, TOMLFileName)) || fileExists(filepath.Join(dir, ConfigFileName))
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or an error if not found.
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
			return "", errors.New("M402").
				WithDetail("No markup.toml or markup.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest project root. When
// no config file exists, defaults rooted at the working directory are
// returned.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		cfg := New()
		cfg.configPath = filepath.Join(wd, TOMLFileName)
		return cfg, nil
	}

	return Load(root)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
