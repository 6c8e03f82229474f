/*
Package config loads the defaults of the entropia tool from an
entropia.toml file. Command line flags override them.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/ckacy01/entropia/feature"
)

// FileName is the name of the configuration file looked up by Find.
const FileName = "entropia.toml"

// DefaultMaxInstances is the default limit on generated or entered instances.
const DefaultMaxInstances = 10000

const (
	// BackendMemory keeps sessions in process memory.
	BackendMemory = "memory"
	// BackendRedis keeps sessions on a redis DB.
	BackendRedis = "redis"
	// CodecMsgpack stores sessions on redis as MessagePack.
	CodecMsgpack = "msgpack"
	// CodecJSON stores sessions on redis as JSON documents.
	CodecJSON = "json"
)

/*
Config holds the defaults of the tool. TOML integers are decoded as int64
and converted with the accessor methods.
*/
type Config struct {
	Class        string        `toml:"class"`
	Metadata     string        `toml:"metadata"`
	Instances    int64         `toml:"instances"`
	MaxInstances int64         `toml:"max_instances"`
	Seed         int64         `toml:"seed"`
	Parallelism  int64         `toml:"parallelism"`
	Server       ServerConfig  `toml:"server"`
	Session      SessionConfig `toml:"session"`
}

// ServerConfig holds the settings of the HTTP API.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// SessionConfig holds the settings of the session store.
type SessionConfig struct {
	Backend   string `toml:"backend"`
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int64  `toml:"redis_db"`
	Prefix    string `toml:"prefix"`
	TTL       string `toml:"ttl"`
	Codec     string `toml:"codec"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Class:        "Clase",
		Instances:    10,
		MaxInstances: DefaultMaxInstances,
		Seed:         0,
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Session: SessionConfig{
			Backend:   BackendMemory,
			RedisAddr: "localhost:6379",
			Prefix:    "entropia:session",
			TTL:       "24h",
			Codec:     CodecMsgpack,
		},
	}
}

/*
Find looks for an entropia.toml file on startDir and its ancestors and
returns its path and true, or false if there is none.
*/
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolving start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("checking %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

/*
Load takes the path of a TOML file and returns the default configuration
overridden by the keys defined on it. If path is "" the file is looked up
with Find from the working directory, and the defaults are returned if
none is found.
*/
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		found, ok, err := Find(".")
		if err != nil || !ok {
			return cfg, err
		}
		path = found
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%s: parsing TOML: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

/*
Validate returns an error wrapping feature.ErrInvalidArgument if a value
of the configuration is out of its range.
*/
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Class) == "" {
		return fmt.Errorf("class cannot be empty: %w", feature.ErrInvalidArgument)
	}
	n, err := c.InstanceCount()
	if err != nil {
		return err
	}
	if err = c.CheckInstanceCount(n); err != nil {
		return err
	}
	if _, err = c.ParallelismLimit(); err != nil {
		return err
	}
	switch c.Session.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown session backend %q, expected %s or %s: %w", c.Session.Backend, BackendMemory, BackendRedis, feature.ErrInvalidArgument)
	}
	switch c.Session.Codec {
	case CodecMsgpack, CodecJSON:
	default:
		return fmt.Errorf("unknown session codec %q, expected %s or %s: %w", c.Session.Codec, CodecMsgpack, CodecJSON, feature.ErrInvalidArgument)
	}
	if _, err = c.SessionTTL(); err != nil {
		return err
	}
	_, err = c.RedisDB()
	return err
}

// InstanceCount returns the number of instances to generate or enter.
func (c *Config) InstanceCount() (int, error) {
	if c.Instances < 0 {
		return 0, fmt.Errorf("instances cannot be negative, got %d: %w", c.Instances, feature.ErrInvalidArgument)
	}
	n, err := safecast.Conv[int](c.Instances)
	if err != nil {
		return 0, fmt.Errorf("instances: %v: %w", err, feature.ErrInvalidArgument)
	}
	return n, nil
}

// MaxInstanceCount returns the largest number of instances to generate or enter.
func (c *Config) MaxInstanceCount() (int, error) {
	if c.MaxInstances < 1 {
		return 0, fmt.Errorf("max_instances must be positive, got %d: %w", c.MaxInstances, feature.ErrInvalidArgument)
	}
	n, err := safecast.Conv[int](c.MaxInstances)
	if err != nil {
		return 0, fmt.Errorf("max_instances: %v: %w", err, feature.ErrInvalidArgument)
	}
	return n, nil
}

/*
CheckInstanceCount returns an error wrapping feature.ErrInvalidArgument if n
instances cannot be generated or entered: if it is negative or greater than
MaxInstanceCount.
*/
func (c *Config) CheckInstanceCount(n int) error {
	limit, err := c.MaxInstanceCount()
	if err != nil {
		return err
	}
	if n < 0 || n > limit {
		return fmt.Errorf("instances must be between 0 and %d, got %d: %w", limit, n, feature.ErrInvalidArgument)
	}
	return nil
}

// ParallelismLimit returns the maximum number of gains computed at once.
func (c *Config) ParallelismLimit() (int, error) {
	if c.Parallelism < 0 {
		return 0, fmt.Errorf("parallelism cannot be negative, got %d: %w", c.Parallelism, feature.ErrInvalidArgument)
	}
	n, err := safecast.Conv[int](c.Parallelism)
	if err != nil {
		return 0, fmt.Errorf("parallelism: %v: %w", err, feature.ErrInvalidArgument)
	}
	return n, nil
}

// RedisDB returns the number of the redis DB holding sessions.
func (c *Config) RedisDB() (int, error) {
	n, err := safecast.Conv[int](c.Session.RedisDB)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid redis_db %d: %w", c.Session.RedisDB, feature.ErrInvalidArgument)
	}
	return n, nil
}

// SessionTTL returns how long stored sessions last, 0 meaning forever.
func (c *Config) SessionTTL() (time.Duration, error) {
	if c.Session.TTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.Session.TTL)
	if err != nil || ttl < 0 {
		return 0, fmt.Errorf("invalid session ttl %q: %w", c.Session.TTL, feature.ErrInvalidArgument)
	}
	return ttl, nil
}
