package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/getmockd/serverify/internal/cliconfig"
	"github.com/getmockd/serverify/pkg/cli/internal/flags"
	"github.com/getmockd/serverify/pkg/cli/internal/output"
	"github.com/getmockd/serverify/pkg/config"
	"github.com/getmockd/serverify/pkg/engine"
	"github.com/getmockd/serverify/pkg/logging"
	"github.com/getmockd/serverify/pkg/session"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 30 * time.Second

// serveFlags holds the flag values of the serve command.
type serveFlags struct {
	configs        flags.StringSlice
	settings       string
	host           string
	port           int
	logLevel       string
	logFormat      string
	sessionBackend string
	sessionDSN     string
	readTimeout    int
	writeTimeout   int
	maxBodySize    int64
}

func newServeCmd(_ *rootOptions) *cobra.Command {
	f := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the stub HTTP server",
		Long: `Serve loads the endpoint tables, starts the HTTP server and records every
mock request in the session store until SIGINT or SIGTERM.

Routes:
  /mock/{session}/{path...}   answered from the endpoint table
  POST /session               create a session
  GET /session/{id}           recorded history (filters: method, path, body_path)
  DELETE /session/{id}        delete a session
  GET /health                 liveness`,
		Example: `  serverify serve -c mocks.yaml
  serverify serve -c 'mocks/**/*.yaml' --port 8080 --log-format json
  serverify serve --settings serverify.yaml --session-backend sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveSettings(cmd, f)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f.register(cmd)
	return cmd
}

// register binds the flags to cmd.
func (f *serveFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.VarP(&f.configs, "config", "c", "Endpoint table file or glob (repeatable)")
	fl.StringVar(&f.settings, "settings", "", "Path to a YAML settings file")
	fl.StringVar(&f.host, "host", cliconfig.DefaultHost, "Address to listen on")
	fl.IntVarP(&f.port, "port", "p", cliconfig.DefaultPort, "HTTP port (0 picks a free port)")
	fl.StringVar(&f.logLevel, "log-level", cliconfig.DefaultLogLevel, "Log level (debug, info, warn, error)")
	fl.StringVar(&f.logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format (text, json)")
	fl.StringVar(&f.sessionBackend, "session-backend", cliconfig.DefaultSessionBackend, "Session store backend (memory, sqlite)")
	fl.StringVar(&f.sessionDSN, "session-dsn", "", "SQLite data source name (default: private in-memory database)")
	fl.IntVar(&f.readTimeout, "read-timeout", cliconfig.DefaultReadTimeout, "Read timeout in seconds")
	fl.IntVar(&f.writeTimeout, "write-timeout", cliconfig.DefaultWriteTimeout, "Write timeout in seconds")
	fl.Int64Var(&f.maxBodySize, "max-body-size", cliconfig.DefaultMaxBodySize, "Maximum request body size in bytes")
}

// resolveSettings layers the flags the user actually set over the settings
// file, environment and defaults.
func resolveSettings(cmd *cobra.Command, f *serveFlags) (*cliconfig.CLIConfig, error) {
	cfg, err := cliconfig.Load(f.settings)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	apply := func(name, key string, set func()) {
		if changed(name) {
			set()
			cfg.Sources[key] = cliconfig.SourceFlag
		}
	}
	apply("config", "config", func() { cfg.ConfigFiles = []string(f.configs) })
	apply("host", "host", func() { cfg.Host = f.host })
	apply("port", "port", func() { cfg.Port = f.port })
	apply("log-level", "logLevel", func() { cfg.LogLevel = f.logLevel })
	apply("log-format", "logFormat", func() { cfg.LogFormat = f.logFormat })
	apply("session-backend", "sessionBackend", func() { cfg.SessionBackend = f.sessionBackend })
	apply("session-dsn", "sessionDsn", func() { cfg.SessionDSN = f.sessionDSN })
	apply("read-timeout", "readTimeout", func() { cfg.ReadTimeout = f.readTimeout })
	apply("write-timeout", "writeTimeout", func() { cfg.WriteTimeout = f.writeTimeout })
	apply("max-body-size", "maxBodySize", func() { cfg.MaxBodySize = f.maxBodySize })

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.ConfigFiles) == 0 {
		return nil, ErrNoEndpointTable
	}
	return cfg, nil
}

// runServe starts the server described by cfg and blocks until ctx is done.
func runServe(ctx context.Context, cfg *cliconfig.CLIConfig, stdout, stderr io.Writer) error {
	log := logging.FromSettings(cfg.LogLevel, cfg.LogFormat, stderr)

	reg, err := config.Load(cfg.ConfigFiles)
	if err != nil {
		return fmt.Errorf("load endpoint table: %w", err)
	}

	store, err := session.New(cfg.SessionBackend, cfg.SessionDSN)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			output.Warn(stderr, "session store close error: %v", err)
		}
	}()

	srv := engine.NewServer(&engine.Config{
		Host:         cfg.Host,
		Port:         cfg.Port,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		MaxBodySize:  cfg.MaxBodySize,
	}, reg, store, engine.WithLogger(log))

	if err := srv.Start(); err != nil {
		return err
	}
	log.Debug("settings resolved", "sources", cfg.Sources)
	fmt.Fprintf(stdout, "serverify listening on %s (%d endpoints, %s sessions)\n", srv.Addr(), reg.Len(), cfg.SessionBackend)

	<-ctx.Done()
	fmt.Fprintln(stdout, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		output.Warn(stderr, "server shutdown error: %v", err)
	}

	fmt.Fprintln(stdout, "Server stopped")
	return nil
}
