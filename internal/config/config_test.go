package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	require.NoError(t, Load(""))

	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, "memory", GetString("storage.type"))

	in := GetInteraction()
	assert.Equal(t, 5.0, in.ClickThresholdPx)
	assert.Equal(t, 0.05, in.MinScale)
	assert.Equal(t, 32, in.EllipseSegments)
	assert.Equal(t, 30.0, in.RotationHandleOffsetPx)
	assert.Equal(t, 1.0, in.MinCircleRadiusM)
}

func TestLoadFileOverrides(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	cfg := `{"logLevel":"debug","interaction":{"clickThresholdPx":10},"storage":{"type":"sqlite"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "annotate.cfg.json"), []byte(cfg), 0o644))

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, "sqlite", GetString("storage.type"))
	assert.Equal(t, 10.0, GetInteraction().ClickThresholdPx)
	// Untouched keys keep their defaults.
	assert.Equal(t, 3.0, GetInteraction().SmoothingPx)
}

func TestGetOTel_Defaults(t *testing.T) {
	viper.Reset()
	require.NoError(t, Load(""))

	oc := GetOTel()
	assert.False(t, oc.Enabled)
	assert.Equal(t, "annotate", oc.ServiceName)
	assert.Equal(t, 5*time.Second, oc.BatchTimeout)
	assert.Equal(t, "", oc.Endpoint)
	assert.True(t, oc.Insecure)
}

func TestGetOTel_Override(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	cfg := `{"otel":{"enabled":true,"serviceName":"annotate-dev","batchTimeout":"30s","endpoint":"localhost:4318","insecure":false}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "annotate.cfg.json"), []byte(cfg), 0o644))

	require.NoError(t, Load(dir))

	oc := GetOTel()
	assert.True(t, oc.Enabled)
	assert.Equal(t, "annotate-dev", oc.ServiceName)
	assert.Equal(t, 30*time.Second, oc.BatchTimeout)
	assert.Equal(t, "localhost:4318", oc.Endpoint)
	assert.False(t, oc.Insecure)
}

func TestLoadMissingFile(t *testing.T) {
	viper.Reset()
	assert.Error(t, Load(t.TempDir()))
}
