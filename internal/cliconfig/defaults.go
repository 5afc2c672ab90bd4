package cliconfig

// DefaultHost is the default listen address.
const DefaultHost = "0.0.0.0"

// DefaultPort is the default HTTP port.
const DefaultPort = 4000

// DefaultReadTimeout is the default read timeout in seconds.
const DefaultReadTimeout = 30

// DefaultWriteTimeout is the default write timeout in seconds.
const DefaultWriteTimeout = 30

// DefaultMaxBodySize is the default cap on recorded request bodies (10 MiB).
const DefaultMaxBodySize int64 = 10 << 20

// Defaults for logging and the session store.
const (
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultSessionBackend = "memory"
)

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Host:           DefaultHost,
		Port:           DefaultPort,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
		SessionBackend: DefaultSessionBackend,
		ReadTimeout:    DefaultReadTimeout,
		WriteTimeout:   DefaultWriteTimeout,
		MaxBodySize:    DefaultMaxBodySize,
		Sources:        make(map[string]string),
	}
	for _, key := range []string{
		"host", "port", "logLevel", "logFormat", "sessionBackend",
		"readTimeout", "writeTimeout", "maxBodySize",
	} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}
