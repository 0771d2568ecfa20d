package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/martinsantos/cannaval-sub000/internal/game"
)

// Config holds all runtime configuration for the grow simulation.
// Values are populated from .cannaval.yaml, CANNAVAL_* env vars, and CLI flags.
type Config struct {
	DBPath       string              `mapstructure:"db_path"`
	CatalogPath  string              `mapstructure:"catalog_path"`
	Garden       string              `mapstructure:"garden"`
	Seed         int64               `mapstructure:"seed"`
	MaxPlants    int                 `mapstructure:"max_plants"`
	Supplies     game.Supplies       `mapstructure:"supplies"`
	Climate      game.ClimateProfile `mapstructure:"climate"`
	WatchCatalog bool                `mapstructure:"watch_catalog"`
	Verbose      bool                `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	climate := game.DefaultClimate()

	viper.SetDefault("db_path", filepath.Join(DataDir(), "cannaval.db"))
	viper.SetDefault("catalog_path", "")
	viper.SetDefault("garden", "default")
	viper.SetDefault("seed", 0)
	viper.SetDefault("max_plants", 6)
	viper.SetDefault("supplies.water", 20)
	viper.SetDefault("supplies.fertilizer", 10)
	viper.SetDefault("supplies.pesticide", 3)
	viper.SetDefault("climate.base_temp_c", climate.BaseTempC)
	viper.SetDefault("climate.temp_swing_c", climate.TempSwingC)
	viper.SetDefault("climate.base_humidity", climate.BaseHumidity)
	viper.SetDefault("climate.humidity_swing", climate.HumiditySwing)
	viper.SetDefault("climate.season_days", climate.SeasonDays)
	viper.SetDefault("watch_catalog", false)
	viper.SetDefault("verbose", false)

	viper.SetEnvPrefix("CANNAVAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("db_path must not be empty")
	}
	if strings.TrimSpace(c.Garden) == "" {
		return errors.New("garden name must not be empty")
	}
	if err := c.GardenConfig().Validate(); err != nil {
		return fmt.Errorf("garden config: %w", err)
	}
	return nil
}

// GardenConfig is the part of the configuration a new garden starts from.
func (c Config) GardenConfig() game.GardenConfig {
	return game.GardenConfig{
		Seed:      c.Seed,
		Climate:   c.Climate,
		Supplies:  c.Supplies,
		MaxPlants: c.MaxPlants,
	}
}

// DataDir is where the database lives unless configured otherwise. It falls
// back to the working directory when no user config dir is available.
func DataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "."
	}
	return filepath.Join(dir, "cannaval")
}
