package output

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]int{"endpoints": 2}))
	assert.Equal(t, "{\n  \"endpoints\": 2\n}\n", buf.String())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tw := Table(&buf)
	fmt.Fprintln(tw, "METHOD\tPATH")
	fmt.Fprintln(tw, "get\t/hello")
	require.NoError(t, tw.Flush())
	assert.Equal(t, "METHOD  PATH\nget     /hello\n", buf.String())
}

func TestWarn(t *testing.T) {
	var buf bytes.Buffer
	Warn(&buf, "server shutdown error: %v", "boom")
	assert.Equal(t, "Warning: server shutdown error: boom\n", buf.String())
}
