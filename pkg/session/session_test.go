package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"default", "mysession", "a-b_C9", "0"} {
		assert.NoError(t, ValidateID(id), id)
	}
	for _, id := range []string{"", " ", "a.b", "a/b", "a b", "é"} {
		assert.ErrorIs(t, ValidateID(id), ErrInvalidSessionID, id)
	}
}

func TestHistoryEntry_MarshalJSON(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 5, 7, 8, 9, 123456789, time.Local)
	e := HistoryEntry{
		Path:      "/hello",
		Method:    "get",
		Body:      "",
		Timestamp: ts,
	}

	raw, err := json.Marshal(e)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, map[string]any{
		"path":      "/hello",
		"method":    "get",
		"headers":   map[string]any{},
		"query":     map[string]any{},
		"body":      "",
		"timestamp": ts.Format(TimestampFormat),
	}, got)
	assert.Contains(t, got["timestamp"], "07:08:09.123")
}

func TestHistoryEntry_MarshalJSONFieldOrder(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 5, 7, 8, 9, 0, time.Local)
	raw, err := json.Marshal(HistoryEntry{
		Path:      "/greet",
		Method:    "post",
		Headers:   map[string]string{"content-type": "application/json"},
		Query:     map[string]string{"q": "1"},
		Body:      `{"name":"a"}`,
		Timestamp: ts,
	})
	require.NoError(t, err)

	expected := `{"path":"/greet","method":"post",` +
		`"headers":{"content-type":"application/json"},"query":{"q":"1"},` +
		`"body":"{\"name\":\"a\"}","timestamp":"` + ts.Format(TimestampFormat) + `"}`
	assert.Equal(t, expected, string(raw))
}
