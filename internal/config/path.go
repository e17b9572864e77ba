package config

import (
	"path/filepath"
	"strings"
)

const (
	DefaultFile = "envconf.toml"
	EnvConfig   = "ENVCONF_CONFIG"
)

// Path picks the config file: explicit flag value, then ENVCONF_CONFIG, then
// envconf.toml. Relative paths are resolved against cwd.
func Path(flagValue string, getenv func(string) string, cwd string) string {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	p := strings.TrimSpace(flagValue)
	if p == "" {
		p = strings.TrimSpace(getenv(EnvConfig))
	}
	if p == "" {
		p = DefaultFile
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(cwd, p)
	}
	return filepath.Clean(p)
}

// resolve joins a declared path onto the config file's directory.
func resolve(baseDir, p string) string {
	p = filepath.FromSlash(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}
