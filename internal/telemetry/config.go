package telemetry

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	envPrefix      = "ENVCONF_TRACE_OTEL_"
	envEndpoint    = envPrefix + "ENDPOINT"
	envInsecure    = envPrefix + "INSECURE"
	envHeaders     = envPrefix + "HEADERS"
	envService     = envPrefix + "SERVICE"
	envDialTimeout = envPrefix + "TIMEOUT"
)

// Config selects where spans go. An empty Endpoint disables export.
type Config struct {
	Endpoint    string
	Insecure    bool
	Headers     map[string]string
	ServiceName string
	Version     string
	DialTimeout time.Duration
}

func Default() Config {
	return Config{
		ServiceName: "envconf",
		DialTimeout: 5 * time.Second,
	}
}

func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

// setting binds one ENVCONF_TRACE_OTEL_* variable to the field it fills.
type setting struct {
	name  string
	apply func(*Config, string) error
}

var settings = []setting{
	{envEndpoint, func(c *Config, v string) error {
		host, insecure, err := splitEndpoint(v)
		if err != nil {
			return err
		}
		c.Endpoint = host
		c.Insecure = c.Insecure || insecure
		return nil
	}},
	{envInsecure, func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("want true or false")
		}
		c.Insecure = b
		return nil
	}},
	{envService, func(c *Config, v string) error {
		c.ServiceName = v
		return nil
	}},
	{envDialTimeout, func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fmt.Errorf("want a positive duration such as 5s")
		}
		c.DialTimeout = d
		return nil
	}},
	{envHeaders, func(c *Config, v string) error {
		h, err := parseHeaders(v)
		if err != nil {
			return err
		}
		c.Headers = h
		return nil
	}},
}

// ConfigFromEnv reads the ENVCONF_TRACE_OTEL_* variables over Default.
// Variables that do not parse keep the default and are described in the
// returned problems.
func ConfigFromEnv(getenv func(string) string) (Config, []string) {
	cfg := Default()
	if getenv == nil {
		return cfg, nil
	}
	var problems []string
	for _, s := range settings {
		v := strings.TrimSpace(getenv(s.name))
		if v == "" {
			continue
		}
		if err := s.apply(&cfg, v); err != nil {
			problems = append(problems, fmt.Sprintf("%s ignored: %v", s.name, err))
		}
	}
	return cfg, problems
}

// splitEndpoint accepts host:port or an http(s) URL. A plain http URL
// implies an insecure connection.
func splitEndpoint(v string) (string, bool, error) {
	insecure := false
	switch {
	case strings.HasPrefix(v, "http://"):
		v, insecure = strings.TrimPrefix(v, "http://"), true
	case strings.HasPrefix(v, "https://"):
		v = strings.TrimPrefix(v, "https://")
	}
	v = strings.TrimSuffix(v, "/")
	if v == "" || strings.Contains(v, "/") {
		return "", false, fmt.Errorf("want host:port")
	}
	return v, insecure, nil
}

// parseHeaders reads comma separated key=value pairs.
func parseHeaders(v string) (map[string]string, error) {
	headers := map[string]string{}
	for i, entry := range strings.Split(v, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, value, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("header %d is not key=value", i+1)
		}
		headers[key] = strings.TrimSpace(value)
	}
	if len(headers) == 0 {
		return nil, nil
	}
	return headers, nil
}
