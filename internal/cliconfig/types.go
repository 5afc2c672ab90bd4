package cliconfig

// CLIConfig is the runtime configuration of the serverify CLI.
// Values are layered with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables (SERVERIFY_*)
// 3. Settings file (--settings, YAML)
// 4. Default values (lowest priority)
type CLIConfig struct {
	// Listener
	Host string `koanf:"host" json:"host" validate:"required"`
	Port int    `koanf:"port" json:"port" validate:"min=0,max=65535"`

	// Endpoint table files or doublestar globs
	ConfigFiles []string `koanf:"config" json:"config,omitempty"`

	// Logging
	LogLevel  string `koanf:"logLevel" json:"logLevel" validate:"oneof=debug info warn warning error"`
	LogFormat string `koanf:"logFormat" json:"logFormat" validate:"oneof=text json"`

	// Session store
	SessionBackend string `koanf:"sessionBackend" json:"sessionBackend" validate:"oneof=memory sqlite"`
	SessionDSN     string `koanf:"sessionDsn" json:"sessionDsn,omitempty"`

	// Timeouts in seconds
	ReadTimeout  int `koanf:"readTimeout" json:"readTimeout" validate:"min=1"`
	WriteTimeout int `koanf:"writeTimeout" json:"writeTimeout" validate:"min=1"`

	// MaxBodySize caps recorded request bodies, in bytes
	MaxBodySize int64 `koanf:"maxBodySize" json:"maxBodySize" validate:"min=1"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `koanf:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)
