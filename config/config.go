package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

var (
	ErrInvalidStore = errors.New("config: unknown event store driver")
)

const (
	Store_Memory = "memory"
	Store_SQLite = "sqlite"
)

type Config struct {
	Mode       string           `env:"HOLDEM_MODE" envDefault:"debug" mapstructure:"mode"` // debug, release
	Table      TableConfig      `envPrefix:"HOLDEM_TABLE_" mapstructure:"table"`
	EventStore EventStoreConfig `envPrefix:"HOLDEM_EVENT_STORE_" mapstructure:"event_store"`
	Redis      RedisConfig      `envPrefix:"HOLDEM_REDIS_" mapstructure:"redis"`
	Bot        BotConfig        `envPrefix:"HOLDEM_BOT_" mapstructure:"bot"`
}

type TableConfig struct {
	NumberOfSeats    int   `env:"NUMBER_OF_SEATS" envDefault:"6" mapstructure:"number_of_seats"`
	StartingChips    int64 `env:"STARTING_CHIPS" envDefault:"1500" mapstructure:"starting_chips"`
	SmallBlind       int64 `env:"SMALL_BLIND" envDefault:"10" mapstructure:"small_blind"`
	BigBlind         int64 `env:"BIG_BLIND" envDefault:"20" mapstructure:"big_blind"`
	ActionTimeoutSec int   `env:"ACTION_TIMEOUT_SEC" envDefault:"0" mapstructure:"action_timeout_sec"`
	ReadyTimeoutSec  int   `env:"READY_TIMEOUT_SEC" envDefault:"0" mapstructure:"ready_timeout_sec"`
}

type EventStoreConfig struct {
	Driver string `env:"DRIVER" envDefault:"memory" mapstructure:"driver"` // memory, sqlite
	Path   string `env:"PATH" envDefault:"holdemtable.db" mapstructure:"path"`
}

type RedisConfig struct {
	Enabled       bool   `env:"ENABLED" envDefault:"false" mapstructure:"enabled"`
	Addr          string `env:"ADDR" envDefault:"127.0.0.1:6379" mapstructure:"addr"`
	Password      string `env:"PASSWORD" mapstructure:"password"`
	DB            int    `env:"DB" envDefault:"0" mapstructure:"db"`
	ChannelPrefix string `env:"CHANNEL_PREFIX" envDefault:"holdemtable:events:" mapstructure:"channel_prefix"`
}

type BotConfig struct {
	Players   []string `env:"PLAYERS" envSeparator:"," envDefault:"Jeffrey,Chuck,Fred,Lottie" mapstructure:"players"`
	Hands     int      `env:"HANDS" envDefault:"10" mapstructure:"hands"`
	Humanized bool     `env:"HUMANIZED" envDefault:"false" mapstructure:"humanized"`
}

/*
LoadConfig 讀取設定
  - 先讀環境變數 (含預設值)
  - path 不為空時再以 YAML 檔覆蓋
*/
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}

		if err := v.Unmarshal(&cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg Config) Validate() error {
	switch cfg.EventStore.Driver {
	case Store_Memory, Store_SQLite:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidStore, cfg.EventStore.Driver)
	}

	if cfg.Table.SmallBlind <= 0 || cfg.Table.BigBlind < cfg.Table.SmallBlind {
		return fmt.Errorf("config: invalid blinds %d/%d", cfg.Table.SmallBlind, cfg.Table.BigBlind)
	}
	return nil
}
