package cliconfig

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names
const (
	EnvHost           = "SERVERIFY_HOST"
	EnvPort           = "SERVERIFY_PORT"
	EnvConfig         = "SERVERIFY_CONFIG"
	EnvLogLevel       = "SERVERIFY_LOG_LEVEL"
	EnvLogFormat      = "SERVERIFY_LOG_FORMAT"
	EnvSessionBackend = "SERVERIFY_SESSION_BACKEND"
	EnvSessionDSN     = "SERVERIFY_SESSION_DSN"
	EnvReadTimeout    = "SERVERIFY_READ_TIMEOUT"
	EnvWriteTimeout   = "SERVERIFY_WRITE_TIMEOUT"
	EnvMaxBodySize    = "SERVERIFY_MAX_BODY_SIZE"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment; malformed
// numbers are ignored.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	setString := func(env, key string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
			cfg.Sources[key] = SourceEnv
		}
	}
	setInt := func(env, key string, dst *int) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
				cfg.Sources[key] = SourceEnv
			}
		}
	}

	setString(EnvHost, "host", &cfg.Host)
	setInt(EnvPort, "port", &cfg.Port)
	setString(EnvLogLevel, "logLevel", &cfg.LogLevel)
	setString(EnvLogFormat, "logFormat", &cfg.LogFormat)
	setString(EnvSessionBackend, "sessionBackend", &cfg.SessionBackend)
	setString(EnvSessionDSN, "sessionDsn", &cfg.SessionDSN)
	setInt(EnvReadTimeout, "readTimeout", &cfg.ReadTimeout)
	setInt(EnvWriteTimeout, "writeTimeout", &cfg.WriteTimeout)

	// SERVERIFY_CONFIG is a comma-separated list of files or globs
	if v := os.Getenv(EnvConfig); v != "" {
		cfg.ConfigFiles = SplitList(v)
		cfg.Sources["config"] = SourceEnv
	}

	// SERVERIFY_MAX_BODY_SIZE
	if v := os.Getenv(EnvMaxBodySize); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxBodySize = n
			cfg.Sources["maxBodySize"] = SourceEnv
		}
	}
}

// SplitList splits a comma-separated list, dropping empty elements.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
