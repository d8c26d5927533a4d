package imghref

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/arloliu/imghref/svgtree"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ChainConfig describes a resolver chain declaratively. Entries are
// listed highest-priority first and assembled right-associatively, so
// the built chain tries them in order.
//
// Example YAML:
//
//	resolvers:
//	  - type: disk-cache
//	    cache_dir: /var/cache/imghref
//	    timeout: 10s
//	  - type: default
type ChainConfig struct {
	Resolvers []ResolverConfig `yaml:"resolvers" validate:"required,min=1,dive"`
}

// ResolverConfig describes a single chain entry.
type ResolverConfig struct {
	// Type selects the resolver implementation: http, memory-cache,
	// disk-cache, async, or default.
	Type string `yaml:"type" validate:"required,oneof=http memory-cache disk-cache async default"`

	// Timeout is the per-request timeout for HTTP-backed entries.
	// Defaults to 30s.
	Timeout Duration `yaml:"timeout"`

	// MaxSize caps response bodies in bytes for HTTP-backed entries.
	MaxSize int64 `yaml:"max_size" default:"16777216" validate:"min=0"`

	// CacheDir is the on-disk cache location; required for disk-cache.
	CacheDir string `yaml:"cache_dir" validate:"required_if=Type disk-cache"`

	// Workers is the worker pool size for async entries.
	Workers int `yaml:"workers" default:"2" validate:"min=1"`

	// UserAgent overrides the User-Agent header for HTTP-backed entries.
	UserAgent string `yaml:"user_agent"`
}

// Environment variables overriding HTTP-backed entry settings.
// Precedence follows the loader convention: config file values are
// overridden by .env values, which are overridden by real process env.
const (
	envTimeout   = "IMGHREF_TIMEOUT"
	envMaxSize   = "IMGHREF_MAX_SIZE"
	envCacheDir  = "IMGHREF_CACHE_DIR"
	envUserAgent = "IMGHREF_USER_AGENT"
)

// LoadChainConfig decodes a YAML chain configuration, applies struct
// defaults and IMGHREF_* environment overrides, and validates the
// result.
func LoadChainConfig(data []byte) (*ChainConfig, error) {
	var cfg ChainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("imghref: decoding chain config: %w", err)
	}

	for i := range cfg.Resolvers {
		rc := &cfg.Resolvers[i]
		if err := defaults.Set(rc); err != nil {
			return nil, &ConfigError{Index: i, Message: "applying defaults", Err: err}
		}
		if rc.Timeout == 0 {
			rc.Timeout = Duration(defaultTimeout)
		}
		if err := rc.applyEnv(i); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadChainConfigFile reads a YAML chain configuration from path through
// the svgtree default filesystem. A .env file in the same directory, if
// present, is loaded into the process environment first, without
// overriding variables that are already set.
func LoadChainConfigFile(path string) (*ChainConfig, error) {
	fs := svgtree.DefaultFs

	loadDotEnv(fs, filepath.Join(filepath.Dir(path), ".env"))

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("imghref: reading chain config %s: %w", path, err)
	}

	return LoadChainConfig(data)
}

// Validate checks the configuration against its validation tags.
func (c *ChainConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("imghref: invalid chain config: %w", err)
	}

	return nil
}

// Build assembles the configured chain. The returned stop function shuts
// down worker pools started for async entries; it is never nil and is
// safe to call when the chain has none.
func (c *ChainConfig) Build() (Resolver, func(), error) {
	if len(c.Resolvers) == 0 {
		return nil, nil, fmt.Errorf("imghref: chain config has no resolvers")
	}

	resolvers := make([]Resolver, 0, len(c.Resolvers))
	var stops []func()

	stopAll := func() {
		for _, stop := range stops {
			stop()
		}
	}

	for i, rc := range c.Resolvers {
		r, err := rc.build()
		if err != nil {
			stopAll()
			return nil, nil, &ConfigError{Index: i, Message: "building resolver", Err: err}
		}
		if a, ok := r.(*AsyncHTTPResolver); ok {
			stops = append(stops, a.Stop)
		}
		resolvers = append(resolvers, r)
	}

	return Chain(resolvers[0], resolvers[1:]...), stopAll, nil
}

func (rc *ResolverConfig) build() (Resolver, error) {
	switch rc.Type {
	case "http":
		return NewHTTPResolver(rc.options()...), nil
	case "memory-cache":
		return NewMemoryCachedHTTPResolver(rc.options()...), nil
	case "disk-cache":
		return NewDiskCachedHTTPResolver(rc.CacheDir, rc.options()...), nil
	case "async":
		r := NewAsyncHTTPResolver(rc.options()...)
		if err := r.Start(rc.Workers); err != nil {
			return nil, err
		}
		return r, nil
	case "default":
		return DefaultResolver{}, nil
	default:
		return nil, fmt.Errorf("unknown resolver type %q", rc.Type)
	}
}

func (rc *ResolverConfig) options() []Option {
	opts := []Option{
		WithTimeout(rc.Timeout.Duration()),
		WithMaxSize(rc.MaxSize),
	}
	if rc.UserAgent != "" {
		opts = append(opts, WithUserAgent(rc.UserAgent))
	}

	return opts
}

func (rc *ResolverConfig) applyEnv(index int) error {
	if v := os.Getenv(envTimeout); v != "" {
		var d Duration
		if err := d.UnmarshalText([]byte(v)); err != nil {
			return &ConfigError{Index: index, Field: envTimeout, Err: err}
		}
		rc.Timeout = d
	}

	if v := os.Getenv(envMaxSize); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &ConfigError{Index: index, Field: envMaxSize, Message: "must be an integer", Err: err}
		}
		rc.MaxSize = n
	}

	if v := os.Getenv(envCacheDir); v != "" && rc.Type == "disk-cache" {
		rc.CacheDir = v
	}

	if v := os.Getenv(envUserAgent); v != "" {
		rc.UserAgent = v
	}

	return nil
}

// loadDotEnv loads variables from a dotenv file into the process
// environment, mirroring godotenv.Load semantics (existing variables are
// never overridden) while reading through the given filesystem.
func loadDotEnv(fs afero.Fs, path string) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return
	}

	vars, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return
	}

	for key, value := range vars {
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
}
