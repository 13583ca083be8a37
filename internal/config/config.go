// Package config loads cmd/demo's settings with cleanenv, the same
// flag-path-then-env-var loader the teacher used for its gRPC server.
package config

import (
	"flag"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config selects which storage and signing adapters the demo wires in.
// Every field is optional: an empty Config runs entirely on the
// in-memory fixtures with no signer.
type Config struct {
	Env string `yaml:"env" env-default:"local"`

	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Vault    VaultConfig    `yaml:"vault"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// Enabled reports whether the demo should dial Postgres instead of
// running on the in-memory fixtures.
func (c PostgresConfig) Enabled() bool { return c.Host != "" }

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type VaultConfig struct {
	Address      string `yaml:"address"`
	RoleIDPath   string `yaml:"role_id_path"`
	SecretIDPath string `yaml:"secret_id_path"`
}

func (c VaultConfig) Enabled() bool { return c.Address != "" }

// MustLoad reads the config file named by -config or CONFIG_PATH,
// returning a zero Config (fixtures-only) when neither is set.
func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		return &Config{}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		panic("config path does not exist: " + path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic(err)
	}
	return &cfg
}

// Priority: flag > env > default (empty, meaning fixtures-only).
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res
}
