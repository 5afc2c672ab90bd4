package engine

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/serverify/pkg/logging"
	"github.com/getmockd/serverify/pkg/session"
)

func TestServer_StartStop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	srv := NewServer(cfg, testRegistry(t), session.NewMemoryStore(), WithLogger(logging.Nop()))
	assert.Empty(t, srv.Addr())
	require.NoError(t, srv.Start())
	assert.True(t, srv.IsRunning())
	assert.Error(t, srv.Start(), "second start must fail")

	resp, err := http.Get("http://" + srv.Addr() + "/mock/default/hello")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello, World!", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))
	assert.False(t, srv.IsRunning())
	require.NoError(t, srv.Stop(ctx), "stop is idempotent")
}

func TestServer_ListenError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	first := NewServer(cfg, testRegistry(t), session.NewMemoryStore())
	require.NoError(t, first.Start())
	defer first.Stop(context.Background()) //nolint:errcheck

	_, portStr, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg2 := DefaultConfig()
	cfg2.Host = "127.0.0.1"
	cfg2.Port = port
	second := NewServer(cfg2, testRegistry(t), session.NewMemoryStore())
	assert.Error(t, second.Start())
}
