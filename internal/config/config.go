package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Storage struct {
		// memory | sqlite | postgres
		Driver string `yaml:"driver"`
		SQLite struct {
			Path string `yaml:"path"`
		} `yaml:"sqlite"`
		Postgres struct {
			DSN          string `yaml:"dsn"`
			MaxOpenConns int    `yaml:"max_open_conns"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		// memory | redis
		Kind  string `yaml:"kind"`
		TTL   string `yaml:"ttl"`
		Redis struct {
			Addr string `yaml:"addr"`
			DB   int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	JWT struct {
		Issuer      string `yaml:"issuer"`
		KeySize     int    `yaml:"key_size"`
		KeyValidity string `yaml:"key_validity"`
	} `yaml:"jwt"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load lee la configuración desde un archivo YAML (opcional) y aplica
// overrides de entorno y defaults. Si path está vacío o el archivo no
// existe, se parte de una config vacía (solo env + defaults).
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// env overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Storage.SQLite.Path = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.Storage.Postgres.DSN = v
	}
	if v := os.Getenv("CACHE_KIND"); v != "" {
		c.Cache.Kind = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		c.JWT.Issuer = v
	}
	if v := os.Getenv("KEY_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: KEY_SIZE inválido: %w", err)
		}
		c.JWT.KeySize = n
	}
	if v := os.Getenv("KEY_VALIDITY"); v != "" {
		c.JWT.KeyValidity = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	// sane defaults
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.SQLite.Path == "" {
		c.Storage.SQLite.Path = "keys.db"
	}
	if c.Storage.Postgres.MaxOpenConns == 0 {
		c.Storage.Postgres.MaxOpenConns = 10
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "15s"
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "http://localhost:8080"
	}
	if c.JWT.KeySize == 0 {
		c.JWT.KeySize = 2048
	}
	if c.JWT.KeyValidity == "" {
		c.JWT.KeyValidity = "1h"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	return &c, nil
}

// KeyValidityDuration parsea JWT.KeyValidity ("1h", "30m", ...).
// Cae a 1h si el valor es inválido.
func (c *Config) KeyValidityDuration() time.Duration {
	d, err := time.ParseDuration(c.JWT.KeyValidity)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// CacheTTLDuration parsea Cache.TTL.
func (c *Config) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}
