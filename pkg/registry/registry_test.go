package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/serverify/pkg/response"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	hello := response.NewStatic(200, nil, "Hello, World!")
	create := response.NewStatic(201, nil, "")
	user := response.NewStatic(200, nil, `{"id":1}`)

	reg, err := New([]Endpoint{
		{Path: "/hello", Method: "GET", Response: hello},
		{Path: "/hello", Method: "post", Response: create},
		{Path: "/api/users/{id}", Method: "get", Response: user},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Len())

	tests := []struct {
		name   string
		path   string
		method string
		want   response.Spec
	}{
		{"exact match", "/hello", "get", hello},
		{"method is case-insensitive", "/hello", "GeT", hello},
		{"different method", "/hello", "POST", create},
		{"braces are literal", "/api/users/{id}", "GET", user},
		{"braces are not variables", "/api/users/1", "GET", nil},
		{"trailing slash differs", "/hello/", "GET", nil},
		{"unknown method", "/hello", "DELETE", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Lookup(tt.path, tt.method)
			if tt.want == nil {
				assert.False(t, ok)
				assert.Nil(t, got)
				return
			}
			assert.True(t, ok)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestNew_Duplicate(t *testing.T) {
	t.Parallel()

	_, err := New([]Endpoint{
		{Path: "/a", Method: "get", Response: response.NewStatic(200, nil, "")},
		{Path: "/a", Method: "GET", Response: response.NewStatic(404, nil, "")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET /a")
}

func TestNew_MissingResponse(t *testing.T) {
	t.Parallel()

	_, err := New([]Endpoint{{Path: "/a", Method: "get"}})
	require.Error(t, err)
}

func TestEndpoints_Sorted(t *testing.T) {
	t.Parallel()

	reg, err := New([]Endpoint{
		{Path: "/b", Method: "get", Response: response.NewStatic(200, nil, "")},
		{Path: "/a", Method: "post", Response: response.NewStatic(200, nil, "")},
		{Path: "/a", Method: "GET", Response: response.NewStatic(200, nil, "")},
	})
	require.NoError(t, err)

	var got []string
	for _, ep := range reg.Endpoints() {
		got = append(got, ep.Method+" "+ep.Path)
	}
	assert.Equal(t, []string{"get /a", "post /a", "get /b"}, got)
}
