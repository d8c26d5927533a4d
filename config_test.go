package imghref_test

import (
	"os"
	"testing"
	"time"

	"github.com/arloliu/imghref"
	"github.com/arloliu/imghref/svgtree"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnvOverrides shields a test from IMGHREF_* variables in the
// ambient environment.
func clearEnvOverrides(t *testing.T) {
	t.Helper()
	for _, key := range []string{"IMGHREF_TIMEOUT", "IMGHREF_MAX_SIZE", "IMGHREF_CACHE_DIR", "IMGHREF_USER_AGENT"} {
		t.Setenv(key, "")
	}
}

func TestLoadChainConfig_Defaults(t *testing.T) {
	clearEnvOverrides(t)

	cfg, err := imghref.LoadChainConfig([]byte(`
resolvers:
  - type: http
  - type: default
`))
	require.NoError(t, err)
	require.Len(t, cfg.Resolvers, 2)

	rc := cfg.Resolvers[0]
	assert.Equal(t, "http", rc.Type)
	assert.Equal(t, 30*time.Second, rc.Timeout.Duration())
	assert.EqualValues(t, 16*1024*1024, rc.MaxSize)
	assert.Equal(t, 2, rc.Workers)
}

func TestLoadChainConfig_ExplicitValues(t *testing.T) {
	clearEnvOverrides(t)

	cfg, err := imghref.LoadChainConfig([]byte(`
resolvers:
  - type: async
    timeout: 5s
    max_size: 1024
    workers: 3
    user_agent: renderer/1.0
`))
	require.NoError(t, err)

	rc := cfg.Resolvers[0]
	assert.Equal(t, 5*time.Second, rc.Timeout.Duration())
	assert.EqualValues(t, 1024, rc.MaxSize)
	assert.Equal(t, 3, rc.Workers)
	assert.Equal(t, "renderer/1.0", rc.UserAgent)
}

func TestLoadChainConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty resolvers", `resolvers: []`},
		{"missing resolvers", `{}`},
		{"unknown type", "resolvers:\n  - type: carrier-pigeon"},
		{"disk cache without dir", "resolvers:\n  - type: disk-cache"},
		{"not yaml", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := imghref.LoadChainConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadChainConfig_DiskCacheWithDir(t *testing.T) {
	cfg, err := imghref.LoadChainConfig([]byte(`
resolvers:
  - type: disk-cache
    cache_dir: /var/cache/imghref
`))
	require.NoError(t, err)
	assert.Equal(t, "/var/cache/imghref", cfg.Resolvers[0].CacheDir)
}

func TestLoadChainConfig_EnvOverrides(t *testing.T) {
	t.Setenv("IMGHREF_TIMEOUT", "7s")
	t.Setenv("IMGHREF_MAX_SIZE", "2048")
	t.Setenv("IMGHREF_USER_AGENT", "ops-override/1")

	cfg, err := imghref.LoadChainConfig([]byte(`
resolvers:
  - type: http
    timeout: 30s
`))
	require.NoError(t, err)

	rc := cfg.Resolvers[0]
	assert.Equal(t, 7*time.Second, rc.Timeout.Duration())
	assert.EqualValues(t, 2048, rc.MaxSize)
	assert.Equal(t, "ops-override/1", rc.UserAgent)
}

func TestLoadChainConfig_BadEnvValue(t *testing.T) {
	t.Setenv("IMGHREF_TIMEOUT", "soon")

	_, err := imghref.LoadChainConfig([]byte("resolvers:\n  - type: http"))
	require.Error(t, err)

	var cfgErr *imghref.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "IMGHREF_TIMEOUT", cfgErr.Field)
}

func TestChainConfig_Build(t *testing.T) {
	srv := newImageServer(t)

	cfg, err := imghref.LoadChainConfig([]byte(`
resolvers:
  - type: http
    timeout: 5s
  - type: default
`))
	require.NoError(t, err)

	resolver, stop, err := cfg.Build()
	require.NoError(t, err)
	defer stop()

	assert.True(t, resolver.Claims(srv.URL+"/gray.png"))
	assert.True(t, resolver.Claims("./local.png"))

	kind := resolver.Resolve(srv.URL+"/gray.png", &svgtree.Options{})
	require.NotNil(t, kind)
	assert.Equal(t, grayPNG, kind.Data())
}

func TestChainConfig_BuildAsyncStops(t *testing.T) {
	srv := newImageServer(t)

	cfg, err := imghref.LoadChainConfig([]byte(`
resolvers:
  - type: async
    workers: 2
`))
	require.NoError(t, err)

	resolver, stop, err := cfg.Build()
	require.NoError(t, err)

	kind := resolver.Resolve(srv.URL+"/gray.png", &svgtree.Options{})
	require.NotNil(t, kind)

	stop()
	require.Panics(t, func() {
		resolver.Resolve(srv.URL+"/gray.png", &svgtree.Options{})
	})
}

func TestLoadChainConfigFile(t *testing.T) {
	memFs := afero.NewMemMapFs()
	svgtree.SetDefaultFs(memFs)
	defer svgtree.ResetDefaultFs()

	require.NoError(t, afero.WriteFile(memFs, "/etc/imghref/resolvers.yaml", []byte(`
resolvers:
  - type: http
  - type: default
`), 0o644))

	cfg, err := imghref.LoadChainConfigFile("/etc/imghref/resolvers.yaml")
	require.NoError(t, err)
	assert.Len(t, cfg.Resolvers, 2)

	_, err = imghref.LoadChainConfigFile("/etc/imghref/nope.yaml")
	assert.Error(t, err)
}

func TestLoadChainConfigFile_DotEnv(t *testing.T) {
	memFs := afero.NewMemMapFs()
	svgtree.SetDefaultFs(memFs)
	defer svgtree.ResetDefaultFs()

	require.NoError(t, afero.WriteFile(memFs, "/etc/imghref/.env",
		[]byte("IMGHREF_USER_AGENT=dotenv-agent/1\n"), 0o600))
	require.NoError(t, afero.WriteFile(memFs, "/etc/imghref/resolvers.yaml",
		[]byte("resolvers:\n  - type: http"), 0o644))

	t.Run("applies when unset", func(t *testing.T) {
		require.NoError(t, os.Unsetenv("IMGHREF_USER_AGENT"))
		defer os.Unsetenv("IMGHREF_USER_AGENT")

		cfg, err := imghref.LoadChainConfigFile("/etc/imghref/resolvers.yaml")
		require.NoError(t, err)
		assert.Equal(t, "dotenv-agent/1", cfg.Resolvers[0].UserAgent)
	})

	t.Run("never overrides process env", func(t *testing.T) {
		t.Setenv("IMGHREF_USER_AGENT", "process-agent/1")

		cfg, err := imghref.LoadChainConfigFile("/etc/imghref/resolvers.yaml")
		require.NoError(t, err)
		assert.Equal(t, "process-agent/1", cfg.Resolvers[0].UserAgent)
	})
}
