package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/serverify/pkg/registry"
	"github.com/getmockd/serverify/pkg/response"
	"github.com/getmockd/serverify/pkg/session"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	friends, err := response.NewPaging(response.PagingOptions{
		Status:         200,
		Headers:        map[string]string{"Content-Type": "application/json"},
		PageParam:      "page",
		PerPageParam:   "per_page",
		DefaultPerPage: 2,
		Template:       map[string]any{"friends": "$_contents", "page": "$_page", "total": "$_total"},
		Items:          []any{"A", "B", "C"},
	})
	require.NoError(t, err)

	reg, err := registry.New([]registry.Endpoint{
		{Path: "/hello", Method: "get", Response: response.NewStatic(200, map[string]string{"Content-Type": "text/plain"}, "Hello, World!")},
		{Path: "/greet", Method: "post", Response: response.NewStatic(201, nil, `{"ok":true}`)},
		{Path: "/api/users/{id}", Method: "get", Response: response.NewStatic(200, nil, `{"id":1}`)},
		{Path: "/friends", Method: "get", Response: friends},
	})
	require.NoError(t, err)
	return reg
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestDispatch_Static(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	d := NewDispatcher(testRegistry(t), store, nil)
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	d.now = fixedClock(ts)

	out := d.Dispatch(MockRequest{
		Session: session.DefaultID,
		Path:    "/hello",
		Method:  "GET",
		Headers: map[string]string{"x-test": "1"},
		Query:   map[string]string{"q": "v"},
	})
	assert.Equal(t, 200, out.Status)
	assert.Equal(t, map[string]string{"Content-Type": "text/plain"}, out.Headers)
	assert.Equal(t, "Hello, World!", string(out.Body))

	history, err := store.History(session.DefaultID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, session.HistoryEntry{
		Path:      "/hello",
		Method:    "get",
		Headers:   map[string]string{"x-test": "1"},
		Query:     map[string]string{"q": "v"},
		Body:      "",
		Timestamp: ts,
	}, history[0])
}

func TestDispatch_UnknownRouteLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	require.NoError(t, store.Create("s1"))
	d := NewDispatcher(testRegistry(t), store, nil)

	tests := []MockRequest{
		{Session: "s1", Path: "/nope", Method: "GET"},
		{Session: "s1", Path: "/hello", Method: "DELETE"},
		{Session: "s1", Path: "/api/users/1", Method: "GET"},
	}
	for _, req := range tests {
		out := d.Dispatch(req)
		assert.Equal(t, 404, out.Status)
		assert.Contains(t, string(out.Body), `"serverify_error"`)
	}
	assert.JSONEq(t, `{"serverify_error":{"message":"no mock endpoint for GET /nope"}}`,
		string(d.Dispatch(MockRequest{Session: "s1", Path: "/nope", Method: "get"}).Body))

	history, err := store.History("s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDispatch_LiteralBracePath(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(testRegistry(t), session.NewMemoryStore(), nil)
	out := d.Dispatch(MockRequest{Session: session.DefaultID, Path: "/api/users/{id}", Method: "get"})
	assert.Equal(t, 200, out.Status)
	assert.Equal(t, `{"id":1}`, string(out.Body))
}

func TestDispatch_UncreatedSession(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	d := NewDispatcher(testRegistry(t), store, nil)

	out := d.Dispatch(MockRequest{Session: "ghost", Path: "/hello", Method: "get"})
	assert.Equal(t, 404, out.Status)
	assert.JSONEq(t, `{"serverify_error":{"message":"session \"ghost\" is not found"}}`, string(out.Body))

	_, err := store.History("ghost")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestDispatch_Paging(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(testRegistry(t), session.NewMemoryStore(), nil)

	out := d.Dispatch(MockRequest{Session: session.DefaultID, Path: "/friends", Method: "get"})
	assert.Equal(t, 200, out.Status)
	assert.JSONEq(t, `{"friends":["A","B"],"page":0,"total":3}`, string(out.Body))

	out = d.Dispatch(MockRequest{
		Session: session.DefaultID,
		Path:    "/friends",
		Method:  "get",
		Query:   map[string]string{"page": "1"},
	})
	assert.JSONEq(t, `{"friends":["C"],"page":1,"total":3}`, string(out.Body))
}

func TestDispatch_ConcurrentAppendOrder(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	require.NoError(t, store.Create("busy"))
	d := NewDispatcher(testRegistry(t), store, nil)

	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := d.Dispatch(MockRequest{
				Session: "busy",
				Path:    "/greet",
				Method:  "POST",
				Body:    string(rune('a' + i%26)),
			})
			assert.Equal(t, 201, out.Status)
		}()
	}
	wg.Wait()

	history, err := store.History("busy")
	require.NoError(t, err)
	assert.Len(t, history, n)
}
