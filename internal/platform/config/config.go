package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	RedisAddr       string
	RedisPassword   string
	MappingCacheTTL time.Duration

	// AccrualCronSpec drives the periodic interest accrual runner.
	AccrualCronSpec string

	// CalculationPrecision is the number of significant digits used for
	// divisions inside interest calculations.
	CalculationPrecision int32

	// InterestPostingPeriodDays is how often accrued interest becomes due
	// for posting to accounts.
	InterestPostingPeriodDays int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("MAPPING_CACHE_TTL", "10m")
	viper.SetDefault("ACCRUAL_CRON_SPEC", "0 0 1 * * *") // 01:00 daily
	viper.SetDefault("CALCULATION_PRECISION", 19)
	viper.SetDefault("INTEREST_POSTING_PERIOD_DAYS", 30)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")

	cacheTTLStr := viper.GetString("MAPPING_CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		cacheTTL = 10 * time.Minute
		log.Printf("Warning: Invalid value for MAPPING_CACHE_TTL ('%s'). Defaulting to %s.\n", cacheTTLStr, cacheTTL)
	}
	cfg.MappingCacheTTL = cacheTTL

	cfg.AccrualCronSpec = viper.GetString("ACCRUAL_CRON_SPEC")

	cfg.CalculationPrecision = viper.GetInt32("CALCULATION_PRECISION")
	if cfg.CalculationPrecision <= 0 {
		cfg.CalculationPrecision = 19
		log.Printf("Warning: CALCULATION_PRECISION must be positive. Defaulting to %d.\n", cfg.CalculationPrecision)
	}

	cfg.InterestPostingPeriodDays = viper.GetInt("INTEREST_POSTING_PERIOD_DAYS")
	if cfg.InterestPostingPeriodDays <= 0 {
		cfg.InterestPostingPeriodDays = 30
		log.Printf("Warning: INTEREST_POSTING_PERIOD_DAYS must be positive. Defaulting to %d.\n", cfg.InterestPostingPeriodDays)
	}

	return cfg, nil
}
