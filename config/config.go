package config

import (
	"errors"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port        int      `mapstructure:"port"`
		CorsOrigins []string `mapstructure:"cors_origins"`
	} `mapstructure:"server"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Inventory struct {
		Path  string `mapstructure:"path"`
		Rooms int    `mapstructure:"rooms"`
		Mode  string `mapstructure:"mode"`
		// Load restores the saved inventory at start instead of generating one.
		Load bool `mapstructure:"load"`
	} `mapstructure:"inventory"`

	Store struct {
		Driver string `mapstructure:"driver"`
	} `mapstructure:"store"`
}

const (
	DriverJSON  = "json"
	DriverMySQL = "mysql"

	DefaultInventoryPath = "data/rooms.json"
)

// Load reads .env (optional), configs/config.yaml (optional) and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFile("configs/config.yaml")
}

func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("inventory.path", DefaultInventoryPath)
	v.SetDefault("inventory.rooms", 20)
	v.SetDefault("inventory.mode", "deterministic")
	v.SetDefault("inventory.load", true)
	v.SetDefault("store.driver", DriverJSON)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindings := map[string]string{
		"server.port":         "PORT",
		"server.cors_origins": "CORS_ORIGINS",
		"log.level":           "LOG_LEVEL",
		"inventory.path":      "ROOMS_DB_PATH",
		"inventory.rooms":     "ROOMS_COUNT",
		"inventory.mode":      "ROOMS_MODE",
		"inventory.load":      "ROOMS_LOAD",
		"store.driver":        "STORE_DRIVER",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		log.Printf("⚠️  config file %s not found or unreadable; using defaults and environment variables", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Server.CorsOrigins = parseCorsOrigins(cfg.Server.CorsOrigins)
	cfg.Inventory.Path = strings.TrimSpace(cfg.Inventory.Path)
	if cfg.Inventory.Path == "" {
		cfg.Inventory.Path = DefaultInventoryPath
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("server.port must be between 1 and 65535")
	}
	if c.Inventory.Rooms < 0 {
		return errors.New("inventory.rooms must not be negative")
	}
	switch c.Store.Driver {
	case DriverJSON, DriverMySQL:
	default:
		return errors.New("store.driver must be json or mysql")
	}
	return nil
}

// parseCorsOrigins accepts either a list or one comma separated string, as
// CORS_ORIGINS arrives from the environment.
func parseCorsOrigins(raw []string) []string {
	origins := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			if origin := strings.TrimSpace(part); origin != "" {
				origins = append(origins, origin)
			}
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
