package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithOverrides(t *testing.T) {
	base := NewAppConfig(".fixinspect", "dict/FIX44.xml", '|', 4,
		".fixinspect/archive.db", "", "", ":8080", "warn", "default", "")

	dict := "s3://bucket/FIX50.xml"
	soh := byte(0x01)
	zero := 0
	got := base.WithOverrides(Overrides{DictionaryPath: &dict, Delimiter: &soh, Workers: &zero})

	assert.Equal(t, dict, got.DictionaryPath())
	assert.Equal(t, byte(0x01), got.Delimiter())
	assert.Equal(t, 4, got.Workers())
	assert.Equal(t, "warn", got.StderrLevel())

	assert.Equal(t, "dict/FIX44.xml", base.DictionaryPath())
	assert.Equal(t, byte('|'), base.Delimiter())
}

func TestAppConfigImplementsConfig(t *testing.T) {
	var cfg Config = NewAppConfig("h", "d", ';', 2, "a", "eu-west-1", "m", ":9", "info", "yaml", "h/setting.yml")
	assert.Equal(t, "h", cfg.Home())
	assert.Equal(t, "eu-west-1", cfg.S3Region())
	assert.Equal(t, "m", cfg.MetricsTextfile())
	assert.Equal(t, ":9", cfg.ServeAddr())
	assert.Equal(t, "yaml", cfg.ConfigSource())
	assert.Equal(t, "h/setting.yml", cfg.SettingPath())
}
