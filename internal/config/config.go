package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"example.com/userdir/internal/log"
)

const (
	StorageFile   = "file"
	StorageMemory = "memory"
)

type Config struct {
	Env             string
	Host            string
	Port            int
	PortAttempts    int
	Storage         string
	DataFile        string
	Watch           bool
	MaxBodyBytes    int64
	LogLevel        log.LogLevel
	ShutdownTimeout time.Duration
}

type option struct {
	key   string
	flag  string
	env   string
	usage string
}

var options = []option{
	{"env", "env", "APP_ENV", "environment: dev uses text logs, anything else JSON"},
	{"host", "host", "HTTP_HOST", "listen host (empty for all interfaces)"},
	{"port", "port", "PORT", "first port to try"},
	{"port_attempts", "port-attempts", "PORT_ATTEMPTS", "ports to try when the address is in use"},
	{"storage", "storage", "STORAGE", "storage backend: file|memory"},
	{"data_file", "data", "DATA_FILE", "path of the JSON users document"},
	{"watch", "watch", "WATCH", "reload the document when it changes on disk"},
	{"max_body_bytes", "max-body-bytes", "MAX_BODY_BYTES", "request body ceiling in bytes"},
	{"log_level", "log-level", "LOG_LEVEL", "log level: error|warn|info|debug"},
	{"shutdown_timeout", "shutdown-timeout", "SHUTDOWN_TIMEOUT", "graceful shutdown timeout"},
}

// BindFlags registers the service flags on fs and binds each one, together
// with its environment variable, into v. Flags win over the environment.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.String("env", "dev", "")
	fs.String("host", "", "")
	fs.Int("port", 3000, "")
	fs.Int("port-attempts", 10, "")
	fs.String("storage", StorageFile, "")
	fs.String("data", "users.json", "")
	fs.Bool("watch", false, "")
	fs.Int64("max-body-bytes", 1<<20, "")
	fs.String("log-level", string(log.LevelInfo), "")
	fs.Duration("shutdown-timeout", 5*time.Second, "")

	for _, o := range options {
		f := fs.Lookup(o.flag)
		f.Usage = o.usage
		if err := v.BindPFlag(o.key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", o.flag, err)
		}
		if err := v.BindEnv(o.key, o.env); err != nil {
			return fmt.Errorf("bind env %s: %w", o.env, err)
		}
	}
	return nil
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:             v.GetString("env"),
		Host:            v.GetString("host"),
		Port:            v.GetInt("port"),
		PortAttempts:    v.GetInt("port_attempts"),
		Storage:         v.GetString("storage"),
		DataFile:        v.GetString("data_file"),
		Watch:           v.GetBool("watch"),
		MaxBodyBytes:    v.GetInt64("max_body_bytes"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}
	level, err := log.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage {
	case StorageFile:
		if c.DataFile == "" {
			return fmt.Errorf("data file is required for %s storage", StorageFile)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("invalid storage: %q", c.Storage)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.PortAttempts < 1 {
		return fmt.Errorf("port attempts must be at least 1, got %d", c.PortAttempts)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
