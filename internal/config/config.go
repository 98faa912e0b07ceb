package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Raster block store and product generation.
	RasterInputDir  string
	RasterOutputDir string
	RasterCacheSize int
	BandWorkers     int
	ProductTimeout  time.Duration
	FillSoilNoData  bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	productTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("PRODUCT_TIMEOUT", "2m"))
	if err != nil || productTimeout <= 0 {
		return nil, errors.New("invalid PRODUCT_TIMEOUT")
	}

	cacheSize, err := parseNonNegativeInt("RASTER_CACHE_SIZE", 16)
	if err != nil {
		return nil, err
	}

	workers, err := parseNonNegativeInt("BAND_WORKERS", 0)
	if err != nil {
		return nil, err
	}

	fillSoil := true
	if v := os.Getenv("SOIL_FILL_NODATA"); v != "" {
		fillSoil, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid SOIL_FILL_NODATA")
		}
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "cn-block-jobs"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "cn-products"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "curve-number-etl"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		RasterInputDir:  sharedcfg.EnvOrDefault("RASTER_INPUT_DIR", "data/blocks"),
		RasterOutputDir: sharedcfg.EnvOrDefault("RASTER_OUTPUT_DIR", "data/cn"),
		RasterCacheSize: cacheSize,
		BandWorkers:     workers,
		ProductTimeout:  productTimeout,
		FillSoilNoData:  fillSoil,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.RasterInputDir == "" || cfg.RasterOutputDir == "" {
		return nil, errors.New("RASTER_INPUT_DIR and RASTER_OUTPUT_DIR are required")
	}

	return cfg, nil
}

func parseNonNegativeInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
