package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/redis/go-redis/v9"

	"github.com/lox/holdem-engine/room"
	"github.com/lox/holdem-engine/store/memstore"
	"github.com/lox/holdem-engine/store/redisstore"
)

// Config is the complete server configuration
type Config struct {
	Server  *ServerSettings  `hcl:"server,block"`
	Storage *StorageSettings `hcl:"storage,block"`
	Game    *GameSettings    `hcl:"game,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// StorageSettings selects and tunes the snapshot store backend
type StorageSettings struct {
	Backend   string `hcl:"backend,optional"`
	RedisAddr string `hcl:"redis_addr,optional"`
	RedisTTL  string `hcl:"redis_ttl,optional"`
}

// GameSettings contains table-level configuration applied to every room
type GameSettings struct {
	StartingBaseBet int `hcl:"starting_base_bet,optional"`
	DefaultBalance  int `hcl:"default_balance,optional"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Server:  &ServerSettings{Address: "localhost:8080", LogLevel: "info"},
		Storage: &StorageSettings{Backend: "memory"},
		Game:    &GameSettings{StartingBaseBet: 10, DefaultBalance: 1000},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing file
// yields the defaults; missing blocks and fields are default-filled.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Server == nil {
		cfg.Server = &ServerSettings{}
	}
	if cfg.Storage == nil {
		cfg.Storage = &StorageSettings{}
	}
	if cfg.Game == nil {
		cfg.Game = &GameSettings{}
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost:8080"
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "memory"
	}
	if cfg.Game.StartingBaseBet == 0 {
		cfg.Game.StartingBaseBet = 10
	}
	if cfg.Game.DefaultBalance == 0 {
		cfg.Game.DefaultBalance = 1000
	}

	return &cfg, nil
}

// Validate checks the configuration for contradictions
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "memory":
	case "redis":
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage backend %q requires redis_addr", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Game.StartingBaseBet <= 0 {
		return fmt.Errorf("starting_base_bet must be positive, got %d", c.Game.StartingBaseBet)
	}
	if c.Game.DefaultBalance <= 0 {
		return fmt.Errorf("default_balance must be positive, got %d", c.Game.DefaultBalance)
	}
	return nil
}

// NewStore builds the snapshot store the configuration asks for
func (c *Config) NewStore() (room.Store, error) {
	switch c.Storage.Backend {
	case "redis":
		ttl := time.Duration(0)
		if c.Storage.RedisTTL != "" {
			parsed, err := time.ParseDuration(c.Storage.RedisTTL)
			if err != nil {
				return nil, fmt.Errorf("invalid redis_ttl: %w", err)
			}
			ttl = parsed
		}
		client := redis.NewClient(&redis.Options{Addr: c.Storage.RedisAddr})
		return redisstore.New(client, ttl), nil
	default:
		return memstore.New(), nil
	}
}
