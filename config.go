package statblock

import (
	"fmt"
	"net/http"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

const (
	defaultUserAgent    = "statblock/1.0 (+https://github.com/hyperifyio/statblock)"
	defaultTimeout      = 15 * time.Second
	defaultMirrorPrefix = "https://r.jina.ai/"
)

// Config controls retrieval behavior. The zero value is usable; absent
// fields fall back to defaults.
type Config struct {
	// UserAgent sent on every request.
	UserAgent string
	// PerRequestTimeout bounds each retrieval request.
	PerRequestTimeout time.Duration
	// MirrorPrefix forms the fallback route by prefixing the target URL
	// with a text-rendering mirror.
	MirrorPrefix string
	// DisableMirror turns the fallback route off entirely.
	DisableMirror bool
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

func (c Config) withDefaults() Config {
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.PerRequestTimeout <= 0 {
		c.PerRequestTimeout = defaultTimeout
	}
	if c.MirrorPrefix == "" && !c.DisableMirror {
		c.MirrorPrefix = defaultMirrorPrefix
	}
	if c.DisableMirror {
		c.MirrorPrefix = ""
	}
	return c
}

// FileConfig is the YAML configuration schema. Nested sections map
// naturally to the Config fields. Timeout takes a duration string such as
// "15s".
type FileConfig struct {
	UserAgent string `yaml:"userAgent" json:"userAgent"`
	Timeout   string `yaml:"timeout" json:"timeout"`

	Mirror struct {
		Prefix  string `yaml:"prefix" json:"prefix"`
		Disable bool   `yaml:"disable" json:"disable"`
	} `yaml:"mirror" json:"mirror"`
}

// LoadConfig reads a YAML configuration file into a Config. Fields left
// empty in the file keep their defaults at use time.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	var timeout time.Duration
	if fc.Timeout != "" {
		timeout, err = time.ParseDuration(fc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
	}
	return Config{
		UserAgent:         fc.UserAgent,
		PerRequestTimeout: timeout,
		MirrorPrefix:      fc.Mirror.Prefix,
		DisableMirror:     fc.Mirror.Disable,
	}, nil
}
