// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"fjacquet/budget-board/internal/logging"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`

	Income struct {
		Sheet string `mapstructure:"sheet" yaml:"sheet"` // empty means first sheet
		Cell  string `mapstructure:"cell" yaml:"cell"`
	} `mapstructure:"income" yaml:"income"`

	EmergencyFund struct {
		Months int `mapstructure:"months" yaml:"months"`
	} `mapstructure:"emergency_fund" yaml:"emergency_fund"`

	Thresholds struct {
		WantsIncomeRatio   float64 `mapstructure:"wants_income_ratio" yaml:"wants_income_ratio"`
		NeedsIncomeRatio   float64 `mapstructure:"needs_income_ratio" yaml:"needs_income_ratio"`
		SavingsIncomeRatio float64 `mapstructure:"savings_income_ratio" yaml:"savings_income_ratio"`
	} `mapstructure:"thresholds" yaml:"thresholds"`

	Server struct {
		Addr           string   `mapstructure:"addr" yaml:"addr"`
		AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	} `mapstructure:"server" yaml:"server"`

	Classify struct {
		RulesFile string `mapstructure:"rules_file" yaml:"rules_file"`
	} `mapstructure:"classify" yaml:"classify"`
}

var cellAddressPattern = regexp.MustCompile(`^[A-Za-z]{1,3}[1-9][0-9]*$`)

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config.yaml, then BUDGET_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.config/budget-board")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("BUDGET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Data defaults
	v.SetDefault("data.directory", "data")

	// Income defaults: the monthly workbooks keep income in cell O3 of the
	// first sheet
	v.SetDefault("income.sheet", "")
	v.SetDefault("income.cell", "O3")

	// Emergency fund defaults
	v.SetDefault("emergency_fund.months", 6)

	// Recommendation thresholds
	v.SetDefault("thresholds.wants_income_ratio", 0.30)
	v.SetDefault("thresholds.needs_income_ratio", 0.50)
	v.SetDefault("thresholds.savings_income_ratio", 0.20)

	// Server defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Classification defaults
	v.SetDefault("classify.rules_file", "labels.yaml")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate data directory
	if config.Data.Directory == "" {
		return fmt.Errorf("data.directory must not be empty")
	}

	// Validate income cell address
	if !cellAddressPattern.MatchString(config.Income.Cell) {
		return fmt.Errorf("income.cell must be a cell address like O3, got: %s", config.Income.Cell)
	}

	// Validate emergency fund months
	if config.EmergencyFund.Months < 1 || config.EmergencyFund.Months > 24 {
		return fmt.Errorf("emergency_fund.months must be between 1 and 24, got: %d", config.EmergencyFund.Months)
	}

	// Validate recommendation thresholds
	for name, ratio := range map[string]float64{
		"thresholds.wants_income_ratio":   config.Thresholds.WantsIncomeRatio,
		"thresholds.needs_income_ratio":   config.Thresholds.NeedsIncomeRatio,
		"thresholds.savings_income_ratio": config.Thresholds.SavingsIncomeRatio,
	} {
		if ratio <= 0.0 || ratio > 1.0 {
			return fmt.Errorf("%s must be between 0.0 and 1.0, got: %f", name, ratio)
		}
	}

	// Validate server address
	if config.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the Log
// section of the configuration.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(
		strings.ToLower(config.Log.Level),
		strings.ToLower(config.Log.Format),
	)
}
