// Package config handles the configuration directory and environment settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"nenkin/internal/logging"
)

const (
	// AppName is the application directory name.
	AppName = "nenkin"

	// DefaultSlotKey is the local slot key the checklist snapshot is stored under.
	DefaultSlotKey = "障害年金チェックリスト"

	// DefaultCollection is the remote collection holding one document per item.
	DefaultCollection = "questions"

	// LogFile receives log output while the editor runs with --debug.
	LogFile = "nenkin.log"
)

// Backend kinds.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Slot stores for the local backend.
const (
	SlotFile  = "file"
	SlotRedis = "redis"
)

// Remote orderings.
const (
	OrderID   = "id"
	OrderSeed = "seed"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path. The file slot lives here.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Env holds settings read from the environment.
	Env Env

	// Log receives process log output.
	Log *logging.Sink
}

// Env is the environment-provided part of the configuration.
type Env struct {
	Backend     string        `env:"NENKIN_BACKEND" env-default:"local"`
	SlotKey     string        `env:"NENKIN_SLOT_KEY" env-default:"障害年金チェックリスト"`
	SlotStore   string        `env:"NENKIN_SLOT_STORE" env-default:"file"`
	RedisURL    string        `env:"NENKIN_REDIS_URL"`
	Collection  string        `env:"NENKIN_COLLECTION" env-default:"questions"`
	RemoteOrder string        `env:"NENKIN_REMOTE_ORDER" env-default:"id"`
	LoadTimeout time.Duration `env:"NENKIN_LOAD_TIMEOUT" env-default:"30s"`

	// CredentialsFile is an optional service-account JSON for the remote store.
	CredentialsFile string `env:"NENKIN_CREDENTIALS_FILE"`

	Firebase Firebase
}

// Firebase addresses the remote document store.
// AuthDomain and StorageBucket are carried for diagnostics only.
type Firebase struct {
	APIKey        string `env:"FIREBASE_API_KEY"`
	AuthDomain    string `env:"FIREBASE_AUTH_DOMAIN"`
	ProjectID     string `env:"FIREBASE_PROJECT_ID"`
	StorageBucket string `env:"FIREBASE_STORAGE_BUCKET"`
	EmulatorHost  string `env:"FIRESTORE_EMULATOR_HOST"`
}

// New creates a new Config with the default or specified config directory
// and reads the environment settings.
// If configDir is empty, uses XDG_CONFIG_HOME/nenkin or $HOME/.config/nenkin.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}
	return &Config{Dir: dir, Env: env}, nil
}

// LoadEnv reads Env from the process environment, applying defaults.
func LoadEnv() (Env, error) {
	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		return Env{}, fmt.Errorf("read env: %w", err)
	}
	return env, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// Validate checks enumerated settings and backend prerequisites.
func (c *Config) Validate() error {
	e := c.Env
	switch e.Backend {
	case BackendLocal:
		switch e.SlotStore {
		case SlotFile:
		case SlotRedis:
			if e.RedisURL == "" {
				return fmt.Errorf("NENKIN_REDIS_URL is required for the redis slot")
			}
		default:
			return fmt.Errorf("invalid NENKIN_SLOT_STORE: %q (want file or redis)", e.SlotStore)
		}
		if e.SlotKey == "" {
			return fmt.Errorf("NENKIN_SLOT_KEY must not be empty")
		}
	case BackendRemote:
		if e.Firebase.ProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required for the remote backend")
		}
		if e.Collection == "" {
			return fmt.Errorf("NENKIN_COLLECTION must not be empty")
		}
		if e.RemoteOrder != OrderID && e.RemoteOrder != OrderSeed {
			return fmt.Errorf("invalid NENKIN_REMOTE_ORDER: %q (want id or seed)", e.RemoteOrder)
		}
		if e.LoadTimeout <= 0 {
			return fmt.Errorf("NENKIN_LOAD_TIMEOUT must be positive")
		}
	default:
		return fmt.Errorf("invalid NENKIN_BACKEND: %q (want local or remote)", e.Backend)
	}
	return nil
}

// Setting is one named remote setting and whether it is set.
type Setting struct {
	Name    string
	Present bool
}

// RemoteSettings reports presence of the four remote store settings.
func (c *Config) RemoteSettings() []Setting {
	f := c.Env.Firebase
	return []Setting{
		{Name: "FIREBASE_API_KEY", Present: f.APIKey != ""},
		{Name: "FIREBASE_AUTH_DOMAIN", Present: f.AuthDomain != ""},
		{Name: "FIREBASE_PROJECT_ID", Present: f.ProjectID != ""},
		{Name: "FIREBASE_STORAGE_BUCKET", Present: f.StorageBucket != ""},
	}
}
