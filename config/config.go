package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"demand-forecaster/models"
)

// WindPolicy decides what happens to a wind cell that cannot be parsed
type WindPolicy string

const (
	// WindDefaultZero records unparseable wind as 0 km/h
	WindDefaultZero WindPolicy = "default"
	// WindReject fails the record with a parse error
	WindReject WindPolicy = "reject"
)

// Config holds all application-level configuration
type Config struct {
	// Document store
	DocStoreURL string

	// Scraper
	WeatherURL string
	PageWait   time.Duration // ceiling for the hourly table to appear

	// Reference inputs
	HolidaysPath   string
	SolarPath      string
	RealEstatePath string
	ModelPath      string

	// Outputs
	ForecastCSVPath string
	AllDataCSVPath  string
	JSONPath        string
	FeaturesCSVPath string

	// Pipeline
	WindPolicy       WindPolicy
	CurrentDayOffset int // 0 keeps today's records in the history, 1 keeps tomorrow's
	Location         *time.Location

	LogLevel string
}

// Load reads configuration from an optional .env file and environment
// variables, falling back to defaults. DOCSTORE_URL has no default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DocStoreURL:      getEnv("DOCSTORE_URL", ""),
		WeatherURL:       getEnv("WEATHER_URL", "https://www.timeanddate.com/weather/india/new-delhi/hourly"),
		PageWait:         getEnvDuration("PAGE_WAIT", 10*time.Second),
		HolidaysPath:     getEnv("HOLIDAYS_PATH", "data/Holidays.csv"),
		SolarPath:        getEnv("SOLAR_PATH", "solar_data_forecast.csv"),
		RealEstatePath:   getEnv("REAL_ESTATE_PATH", "real_estate_price_forecast.csv"),
		ModelPath:        getEnv("MODEL_PATH", "model.json"),
		ForecastCSVPath:  getEnv("FORECAST_CSV_PATH", "data/Forecast_Data.csv"),
		AllDataCSVPath:   getEnv("ALL_DATA_CSV_PATH", "data/All_Data.csv"),
		JSONPath:         getEnv("JSON_PATH", "data/data.json"),
		FeaturesCSVPath:  getEnv("FEATURES_CSV_PATH", "sample_data.csv"),
		WindPolicy:       WindPolicy(strings.ToLower(getEnv("WIND_POLICY", string(WindDefaultZero)))),
		CurrentDayOffset: getEnvInt("CURRENT_DAY_OFFSET", 0),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
	}

	if cfg.DocStoreURL == "" {
		return nil, fmt.Errorf("%w: DOCSTORE_URL is not set", models.ErrStoreConnection)
	}

	switch cfg.WindPolicy {
	case WindDefaultZero, WindReject:
	default:
		return nil, fmt.Errorf("invalid WIND_POLICY %q (want %q or %q)", cfg.WindPolicy, WindDefaultZero, WindReject)
	}

	tz := getEnv("TIMEZONE", "Asia/Kolkata")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
