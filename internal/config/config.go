// Package config loads engine settings with viper. Every key carries a
// default so the engine runs without a config file; ReadInConfig only
// overrides.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Interaction bundles the pointer-gesture tunables.
type Interaction struct {
	ClickThresholdPx      float64 `json:"clickThresholdPx" mapstructure:"clickThresholdPx"`
	SmoothingPx           float64 `json:"smoothingPx" mapstructure:"smoothingPx"`
	MinScale              float64 `json:"minScale" mapstructure:"minScale"`
	EllipseSegments       int     `json:"ellipseSegments" mapstructure:"ellipseSegments"`
	RotationHandleOffsetPx float64 `json:"rotationHandleOffsetPx" mapstructure:"rotationHandleOffsetPx"`
	HandleHitTolerancePx  float64 `json:"handleHitTolerancePx" mapstructure:"handleHitTolerancePx"`
	MinCircleRadiusM      float64 `json:"minCircleRadiusM" mapstructure:"minCircleRadiusM"`
}

// OTel holds telemetry export settings for the log pipeline.
type OTel struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

// MemoryConfig holds in-memory/GeoJSON storage backend settings.
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// Load reads configuration from a JSON file after setting defaults.
// configDir is the directory containing the config file; an empty dir
// skips the file and runs on defaults alone.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./annotatelogs")

	viper.SetDefault("interaction.clickThresholdPx", 5.0)
	viper.SetDefault("interaction.smoothingPx", 3.0)
	viper.SetDefault("interaction.minScale", 0.05)
	viper.SetDefault("interaction.ellipseSegments", 32)
	viper.SetDefault("interaction.rotationHandleOffsetPx", 30.0)
	viper.SetDefault("interaction.handleHitTolerancePx", 8.0)
	viper.SetDefault("interaction.minCircleRadiusM", 1.0)

	viper.SetDefault("projection.pixelsPerMeter", 0.1)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.outputDir", "./annotations")
	viper.SetDefault("storage.compressOutput", false)
	viper.SetDefault("storage.sqlite.path", "./annotations.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "annotate")

	viper.SetDefault("api.url", "")
	viper.SetDefault("api.key", "")
	viper.SetDefault("api.layerName", "default")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "annotate-metrics")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "annotate")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	if configDir == "" {
		return nil
	}

	viper.SetConfigName("annotate.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// GetInteraction returns the pointer-gesture tunables.
func GetInteraction() Interaction {
	return Interaction{
		ClickThresholdPx:      viper.GetFloat64("interaction.clickThresholdPx"),
		SmoothingPx:           viper.GetFloat64("interaction.smoothingPx"),
		MinScale:              viper.GetFloat64("interaction.minScale"),
		EllipseSegments:       viper.GetInt("interaction.ellipseSegments"),
		RotationHandleOffsetPx: viper.GetFloat64("interaction.rotationHandleOffsetPx"),
		HandleHitTolerancePx:  viper.GetFloat64("interaction.handleHitTolerancePx"),
		MinCircleRadiusM:      viper.GetFloat64("interaction.minCircleRadiusM"),
	}
}

// GetOTel returns the telemetry export settings.
func GetOTel() OTel {
	return OTel{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}
