// Package config loads the node configuration from a TOML file and the
// environment.
package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"okinoko-guess_reveal/contract"
	"okinoko-guess_reveal/db"
	"okinoko-guess_reveal/sdk"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("ErrInvalidConfig")

// Config is the top level of guessd.toml.
type Config struct {
	Title string `toml:"title"`
	Log   *Log   `toml:"log"`
	Store *Store `toml:"store"`
	Game  *Game  `toml:"game"`
}

// Log configures console and rotating file output.
type Log struct {
	// error, warn, info, debug
	Loglevel        string `toml:"loglevel"`
	LogConsoleLevel string `toml:"logConsoleLevel"`
	// empty means console only
	LogFile     string `toml:"logFile"`
	MaxFileSize uint32 `toml:"maxFileSize"`
	MaxBackups  uint32 `toml:"maxBackups"`
	MaxAge      uint32 `toml:"maxAge"`
	Compress    bool   `toml:"compress"`
}

// Store selects the KV backend.
type Store struct {
	Driver        string `toml:"driver"`
	DbPath        string `toml:"dbPath"`
	Name          string `toml:"name"`
	CacheSize     int    `toml:"cacheSize"`
	RedisAddr     string `toml:"redisAddr"`
	RedisPassword string `toml:"redisPassword"`
	RedisDB       int    `toml:"redisDB"`
}

// Game holds the defaults applied by the CLI when creating a game.
type Game struct {
	CommitWindow uint64 `toml:"commitWindow"`
	RevealWindow uint64 `toml:"revealWindow"`
	DefaultPrize uint64 `toml:"defaultPrize"`
	Asset        string `toml:"asset"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Title: "guessd",
		Log: &Log{
			Loglevel:        "info",
			LogConsoleLevel: "error",
			MaxFileSize:     300,
			MaxBackups:      10,
			MaxAge:          28,
		},
		Store: &Store{
			Driver:    db.GoLevelDBBackendStr,
			DbPath:    "datadir",
			Name:      "guess",
			CacheSize: 1024,
			RedisAddr: "localhost:6379",
		},
		Game: &Game{
			CommitWindow: contract.DefaultWindows.Commit,
			RevealWindow: contract.DefaultWindows.Reveal,
			DefaultPrize: contract.DefaultPrize,
			Asset:        string(sdk.AssetHive),
		},
	}
}

// Load reads path over the defaults and then applies GUESS_* environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, errors.Wrapf(err, "decode %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "stat %s", path)
		}
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrap(err, "load .env")
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes a TOML document over the defaults.
func Parse(doc string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(doc, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return cfg, cfg.Validate()
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *uint64) error {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s=%q", key, v)
		}
		*dst = n
		return nil
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s=%q", key, v)
		}
		*dst = n
		return nil
	}

	str("GUESS_LOG_LEVEL", &c.Log.Loglevel)
	str("GUESS_LOG_CONSOLE_LEVEL", &c.Log.LogConsoleLevel)
	str("GUESS_LOG_FILE", &c.Log.LogFile)
	str("GUESS_DB_DRIVER", &c.Store.Driver)
	str("GUESS_DB_PATH", &c.Store.DbPath)
	str("GUESS_DB_NAME", &c.Store.Name)
	str("GUESS_REDIS_ADDR", &c.Store.RedisAddr)
	str("GUESS_REDIS_PASSWORD", &c.Store.RedisPassword)
	str("GUESS_ASSET", &c.Game.Asset)

	for _, f := range []func() error{
		func() error { return integer("GUESS_DB_CACHE", &c.Store.CacheSize) },
		func() error { return integer("GUESS_REDIS_DB", &c.Store.RedisDB) },
		func() error { return num("GUESS_COMMIT_WINDOW", &c.Game.CommitWindow) },
		func() error { return num("GUESS_REVEAL_WINDOW", &c.Game.RevealWindow) },
		func() error { return num("GUESS_DEFAULT_PRIZE", &c.Game.DefaultPrize) },
	} {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}

// Validate rejects configurations the node cannot run with.
func (c *Config) Validate() error {
	if c.Log == nil || c.Store == nil || c.Game == nil {
		return errors.Wrap(ErrInvalidConfig, "missing section")
	}
	switch c.Store.Driver {
	case db.MemDBBackendStr, db.GoLevelDBBackendStr, db.RedisBackendStr:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown store driver %q", c.Store.Driver)
	}
	if c.Store.CacheSize < 0 {
		return errors.Wrap(ErrInvalidConfig, "negative cacheSize")
	}
	if c.Game.CommitWindow == 0 || c.Game.RevealWindow == 0 {
		return errors.Wrap(ErrInvalidConfig, "commit and reveal windows must be at least one block")
	}
	if !sdk.Asset(c.Game.Asset).Valid() {
		return errors.Wrapf(ErrInvalidConfig, "unknown asset %q", c.Game.Asset)
	}
	return nil
}

// DBOptions maps the store section onto db.Options.
func (s *Store) DBOptions() db.Options {
	return db.Options{
		Backend:       s.Driver,
		Name:          s.Name,
		Dir:           s.DbPath,
		CacheSize:     s.CacheSize,
		RedisAddr:     s.RedisAddr,
		RedisPassword: s.RedisPassword,
		RedisDB:       s.RedisDB,
	}
}

// Windows returns the configured phase lengths.
func (g *Game) Windows() contract.Windows {
	return contract.Windows{Commit: g.CommitWindow, Reveal: g.RevealWindow}
}
