package config

import (
	"fmt"
	"strings"
)

// Environment variables that override the setting file.
const (
	EnvHome        = "FIXINSPECT_HOME"
	EnvDictionary  = "FIXINSPECT_DICT"
	EnvStderrLevel = "FIXINSPECT_LOG_LEVEL"
)

type lookupFunc func(key string) (string, bool)

func applyEnvOverrides(settings *RawSettings, lookup lookupFunc) {
	get := func(k string) (string, bool) {
		v, ok := lookup(k)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	}
	if v, ok := get(EnvHome); ok {
		settings.Home = &v
	}
	if v, ok := get(EnvDictionary); ok {
		settings.Dictionary = &v
	}
	if v, ok := get(EnvStderrLevel); ok {
		settings.StderrLevel = &v
	}
}

// ParseDelimiter accepts "|", "SOH", "^A", "\x01" or any single byte.
func ParseDelimiter(s string) (byte, error) {
	switch strings.ToUpper(s) {
	case "SOH", "^A", `\X01`, `\001`, "\x01":
		return 0x01, nil
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("invalid delimiter %q: must be a single byte or SOH", s)
	}
	if s[0] == '=' {
		return 0, fmt.Errorf("invalid delimiter %q: '=' separates tag and value", s)
	}
	return s[0], nil
}
