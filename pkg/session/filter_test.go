package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Apply(t *testing.T) {
	t.Parallel()

	history := []HistoryEntry{
		{Path: "/users", Method: "post", Body: `{"user":{"name":"ann"}}`},
		{Path: "/users", Method: "get", Body: ""},
		{Path: "/orders", Method: "post", Body: `{"order":{"id":7}}`},
		{Path: "/users", Method: "post", Body: `not json`},
	}

	tests := []struct {
		name     string
		method   string
		path     string
		bodyPath string
		want     []int
	}{
		{"empty filter", "", "", "", []int{0, 1, 2, 3}},
		{"method", "POST", "", "", []int{0, 2, 3}},
		{"path", "", "/users", "", []int{0, 1, 3}},
		{"method and path", "post", "/users", "", []int{0, 3}},
		{"body path", "", "", "$.user.name", []int{0}},
		{"body path descendant", "", "", "$..id", []int{2}},
		{"body path no match", "", "", "$.missing", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f, err := NewFilter(tt.method, tt.path, tt.bodyPath)
			require.NoError(t, err)

			want := make([]HistoryEntry, 0, len(tt.want))
			for _, i := range tt.want {
				want = append(want, history[i])
			}
			assert.Equal(t, want, f.Apply(history))
		})
	}
}

func TestFilter_NilPassesThrough(t *testing.T) {
	t.Parallel()

	var f *Filter
	history := []HistoryEntry{{Path: "/a"}}
	assert.Equal(t, history, f.Apply(history))
}

func TestNewFilter_InvalidBodyPath(t *testing.T) {
	t.Parallel()

	_, err := NewFilter("", "", "$.user[")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFilter)
}
