package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "cn-block-jobs", cfg.KafkaSourceTopic)
	assert.Equal(t, "cn-products", cfg.KafkaSinkTopic)
	assert.Equal(t, "curve-number-etl", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.Equal(t, "data/blocks", cfg.RasterInputDir)
	assert.Equal(t, "data/cn", cfg.RasterOutputDir)
	assert.Equal(t, 16, cfg.RasterCacheSize)
	assert.Zero(t, cfg.BandWorkers)
	assert.Equal(t, 2*time.Minute, cfg.ProductTimeout)
	assert.True(t, cfg.FillSoilNoData)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-jobs")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-products")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "5")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("RASTER_INPUT_DIR", "/srv/blocks")
	t.Setenv("RASTER_OUTPUT_DIR", "/srv/cn")
	t.Setenv("RASTER_CACHE_SIZE", "4")
	t.Setenv("BAND_WORKERS", "6")
	t.Setenv("PRODUCT_TIMEOUT", "30s")
	t.Setenv("SOIL_FILL_NODATA", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-jobs", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-products", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.Equal(t, "/srv/blocks", cfg.RasterInputDir)
	assert.Equal(t, "/srv/cn", cfg.RasterOutputDir)
	assert.Equal(t, 4, cfg.RasterCacheSize)
	assert.Equal(t, 6, cfg.BandWorkers)
	assert.Equal(t, 30*time.Second, cfg.ProductTimeout)
	assert.False(t, cfg.FillSoilNoData)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_InvalidProductTimeout(t *testing.T) {
	t.Setenv("PRODUCT_TIMEOUT", "-5s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PRODUCT_TIMEOUT")
}

func TestLoad_InvalidCacheSize(t *testing.T) {
	t.Setenv("RASTER_CACHE_SIZE", "lots")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RASTER_CACHE_SIZE")
}

func TestLoad_NegativeWorkers(t *testing.T) {
	t.Setenv("BAND_WORKERS", "-1")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BAND_WORKERS")
}

func TestLoad_InvalidFillSoil(t *testing.T) {
	t.Setenv("SOIL_FILL_NODATA", "maybe")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOIL_FILL_NODATA")
}

func TestLoad_BatchSizeTooLarge(t *testing.T) {
	t.Setenv("BATCH_SIZE", "9999")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_InvalidBatchFlushInterval(t *testing.T) {
	t.Setenv("BATCH_FLUSH_INTERVAL", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_FLUSH_INTERVAL")
}
