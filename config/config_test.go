package config

import (
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/pressly/stbi"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// flagDecoder only records the flip flag.
type flagDecoder struct {
	flip bool
}

func (d *flagDecoder) Name() string { return "flag" }

func (d *flagDecoder) LoadFromMemory([]byte, int) (unsafe.Pointer, int, int, int) {
	return nil, 0, 0, 0
}

func (d *flagDecoder) Free(unsafe.Pointer) {}

func (d *flagDecoder) FailureReason() string { return "" }

func (d *flagDecoder) SetFlipVerticallyOnLoad(flip bool) { d.flip = flip }

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "stbi.conf")
	assert.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
flip_vertically = true
force_components = 3

[statsd]
enabled = true
address = "10.0.0.1:8125"
`)

	cf, err := NewConfigFromFile(path, "")
	assert.NoError(t, err)
	assert.Equal(t, "debug", cf.LogLevel)
	assert.Equal(t, "text", cf.LogFormat)
	assert.True(t, cf.FlipVertically)
	assert.Equal(t, 3, cf.ForceComponents)
	assert.True(t, cf.StatsD.Enabled)
	assert.Equal(t, "10.0.0.1:8125", cf.StatsD.Address)
	assert.Equal(t, "stbi", cf.StatsD.ServiceName)
}

func TestNewConfigFromEnvFallback(t *testing.T) {
	path := writeConfig(t, `force_components = 1`)

	cf, err := NewConfigFromFile("", path)
	assert.NoError(t, err)
	assert.Equal(t, 1, cf.ForceComponents)
	assert.Equal(t, "INFO", cf.LogLevel)
}

func TestNewConfigFromFileMissing(t *testing.T) {
	_, err := NewConfigFromFile("", "")
	assert.Equal(t, ErrNoConfigFile, err)

	_, err = NewConfigFromFile(filepath.Join(t.TempDir(), "nope.conf"), "")
	assert.Equal(t, ErrNoConfigFile, err)
}

func TestNewConfigFromFileInvalid(t *testing.T) {
	path := writeConfig(t, `force_components = "three"`)
	_, err := NewConfigFromFile(path, "")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cf := NewConfig()
	assert.NoError(t, cf.Validate())

	cf.ForceComponents = 5
	assert.Error(t, cf.Validate())

	cf = NewConfig()
	cf.LogFormat = "xml"
	assert.Error(t, cf.Validate())
}

func TestApply(t *testing.T) {
	defer stbi.Logger.SetLevel(stbi.Logger.GetLevel())
	defer stbi.Logger.SetFormatter(stbi.Logger.Formatter)

	dec := &flagDecoder{}
	ng := stbi.NewEngine(dec)
	cf := NewConfig()
	cf.LogLevel = "WARN"
	cf.LogFormat = "json"
	cf.FlipVertically = true

	assert.NoError(t, cf.Apply(ng))
	assert.Equal(t, logrus.WarnLevel, stbi.Logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, stbi.Logger.Formatter)
	assert.True(t, dec.flip)

	cf.LogLevel = "chatty"
	assert.Error(t, cf.Apply(ng))
}

func TestSetupStatsD(t *testing.T) {
	cf := NewConfig()
	assert.NoError(t, cf.SetupStatsD())

	// UDP needs no listener on the other end.
	cf.StatsD.Enabled = true
	assert.NoError(t, cf.SetupStatsD())
}
