package cliconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadSettingsFile applies the keys present in a YAML settings file to cfg.
// Keys absent from the file leave cfg untouched.
func LoadSettingsFile(cfg *CLIConfig, path string) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return &ConfigError{Path: path, Message: err.Error()}
	}

	var fileCfg CLIConfig
	if err := k.Unmarshal("", &fileCfg); err != nil {
		return &ConfigError{Path: path, Message: err.Error()}
	}

	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}
	apply := func(key string, set func()) {
		if k.Exists(key) {
			set()
			cfg.Sources[key] = SourceFile
		}
	}
	apply("host", func() { cfg.Host = fileCfg.Host })
	apply("port", func() { cfg.Port = fileCfg.Port })
	apply("config", func() { cfg.ConfigFiles = fileCfg.ConfigFiles })
	apply("logLevel", func() { cfg.LogLevel = fileCfg.LogLevel })
	apply("logFormat", func() { cfg.LogFormat = fileCfg.LogFormat })
	apply("sessionBackend", func() { cfg.SessionBackend = fileCfg.SessionBackend })
	apply("sessionDsn", func() { cfg.SessionDSN = fileCfg.SessionDSN })
	apply("readTimeout", func() { cfg.ReadTimeout = fileCfg.ReadTimeout })
	apply("writeTimeout", func() { cfg.WriteTimeout = fileCfg.WriteTimeout })
	apply("maxBodySize", func() { cfg.MaxBodySize = fileCfg.MaxBodySize })
	return nil
}

// ConfigError represents a settings file error.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Path + ": " + e.Message
}

// Load builds a configuration from defaults, the optional settings file and
// the environment. Flags are applied by the caller afterwards.
func Load(settingsPath string) (*CLIConfig, error) {
	cfg := NewDefault()
	if settingsPath != "" {
		if err := LoadSettingsFile(cfg, settingsPath); err != nil {
			return nil, err
		}
	}
	LoadEnvConfig(cfg)
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the final configuration.
func (c *CLIConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: invalid value %v (%s %s)", fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}
