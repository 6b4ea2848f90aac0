package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/userdir/internal/log"
)

func load(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := viper.New()
	require.NoError(t, BindFlags(fs, v))
	require.NoError(t, fs.Parse(args))
	return Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, Config{
		Env:             "dev",
		Port:            3000,
		PortAttempts:    10,
		Storage:         StorageFile,
		DataFile:        "users.json",
		MaxBodyBytes:    1 << 20,
		LogLevel:        log.LevelInfo,
		ShutdownTimeout: 5 * time.Second,
	}, cfg)
}

func TestLoad_EnvAndFlagPrecedence(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("DATA_FILE", "/tmp/env.json")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("WATCH", "true")

	cfg, err := load(t, "--port", "5000")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "/tmp/env.json", cfg.DataFile)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.Watch)
}

func TestLoad_Invalid(t *testing.T) {
	cases := [][]string{
		{"--storage", "sql"},
		{"--port", "70000"},
		{"--port-attempts", "0"},
		{"--log-level", "loud"},
		{"--max-body-bytes", "0"},
		{"--data", ""},
	}
	for _, args := range cases {
		_, err := load(t, args...)
		assert.Error(t, err, "%v", args)
	}
}

func TestLoad_MemoryStorageIgnoresDataFile(t *testing.T) {
	cfg, err := load(t, "--storage", "memory", "--data", "")
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
}
