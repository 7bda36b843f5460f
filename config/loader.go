package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig() error {
	paths := []string{"config.yml", "./config/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	return loadFromBytes(data)
}

// LoadAppConfigFile loads and validates the configuration from an explicit path.
func LoadAppConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return loadFromBytes(data)
}

func loadFromBytes(data []byte) error {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	applyDefaults(&cfg)
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	Config = cfg
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 16080
	}
	if cfg.Engine.IDAttribute == "" {
		cfg.Engine.IDAttribute = "MMSI"
	}
	if cfg.Engine.MaxGapMinutes == 0 {
		cfg.Engine.MaxGapMinutes = 5
	}
	if cfg.AIS.TimeColumn == "" {
		cfg.AIS.TimeColumn = "Timestamp"
	}
	if cfg.AIS.LatColumn == "" {
		cfg.AIS.LatColumn = "Latitude"
	}
	if cfg.AIS.LonColumn == "" {
		cfg.AIS.LonColumn = "Longitude"
	}
	if cfg.GTFSRT.ReadIntervalMS == 0 {
		cfg.GTFSRT.ReadIntervalMS = 30000
	}
}
