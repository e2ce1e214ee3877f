package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Database   Database   `yaml:"database"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"0.0.0.0:8080"`
	Timeout         time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

type Database struct {
	// Driver is "postgres" or "sqlite".
	Driver      string `yaml:"driver" env:"DATABASE_TYPE" env-default:"postgres"`
	URL         string `yaml:"url" env:"DATABASE_URL"`
	Host        string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port        string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User        string `yaml:"user" env:"POSTGRES_USER"`
	Password    string `yaml:"password" env:"POSTGRES_PASSWORD"`
	Name        string `yaml:"name" env:"POSTGRES_DB"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
}

// DSN returns DATABASE_URL when set, otherwise a connection string built from
// the driver specific settings.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	switch d.Driver {
	case "sqlite":
		return "file:polls.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	default:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.User, d.Password),
			Host:     d.Host + ":" + d.Port,
			Path:     d.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	}
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.URL == "" && c.Database.Name == "" {
			return errors.New("database name required (POSTGRES_DB or DATABASE_URL)")
		}
	case "sqlite":
	default:
		return fmt.Errorf("unsupported database type %q", c.Database.Driver)
	}

	return nil
}

// Load reads the configuration. A .env file is loaded first when present; a
// YAML file is read when given by -config or CONFIG_PATH, and environment
// variables override its values.
func Load(args []string) (*Config, error) {
	cfg, _, err := LoadArgs(args)
	return cfg, err
}

// LoadArgs is Load that also returns the positional arguments left after
// flag parsing.
func LoadArgs(args []string) (*Config, []string, error) {
	_ = godotenv.Load()

	path, rest, err := fetchConfigPath(args)
	if err != nil {
		return nil, nil, err
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, nil, fmt.Errorf("cannot read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, nil, fmt.Errorf("cannot read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	return &cfg, rest, nil
}

// MustLoad is Load for process entry points.
func MustLoad(args []string) *Config {
	cfg, err := Load(args)
	if err != nil {
		panic(err)
	}
	return cfg
}

// MustLoadArgs is LoadArgs for process entry points.
func MustLoadArgs(args []string) (*Config, []string) {
	cfg, rest, err := LoadArgs(args)
	if err != nil {
		panic(err)
	}
	return cfg, rest
}

// fetchConfigPath returns the config file path and the remaining
// positional arguments. Priority: flag > env.
func fetchConfigPath(args []string) (string, []string, error) {
	var res string

	fs := flag.NewFlagSet("polls", flag.ContinueOnError)
	fs.StringVar(&res, "config", "", "config file path")
	if err := fs.Parse(args); err != nil {
		return "", nil, err
	}

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res, fs.Args(), nil
}
