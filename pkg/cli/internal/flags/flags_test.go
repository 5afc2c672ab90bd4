package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice(t *testing.T) {
	var s StringSlice
	require.NoError(t, s.Set("mocks/{a,b}.yaml"))
	require.NoError(t, s.Set("extra.json"))

	assert.Equal(t, StringSlice{"mocks/{a,b}.yaml", "extra.json"}, s)
	assert.Equal(t, "mocks/{a,b}.yaml,extra.json", s.String())
	assert.Equal(t, "stringSlice", s.Type())
}
