// Package registry maps (path, method) pairs to response specs.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getmockd/serverify/pkg/response"
)

// Endpoint binds one path and method to a response spec.
type Endpoint struct {
	Path     string
	Method   string
	Response response.Spec
}

type key struct {
	path   string
	method string
}

// Registry is an immutable lookup table built once at startup. It is safe
// for concurrent reads without locking.
type Registry struct {
	endpoints map[key]response.Spec
}

// New builds a Registry. Methods are matched case-insensitively; paths are
// opaque strings matched exactly, so "/users/{id}" only matches itself.
func New(endpoints []Endpoint) (*Registry, error) {
	r := &Registry{endpoints: make(map[key]response.Spec, len(endpoints))}
	for _, ep := range endpoints {
		if ep.Response == nil {
			return nil, fmt.Errorf("%s %s: response is required", strings.ToUpper(ep.Method), ep.Path)
		}
		k := key{path: ep.Path, method: strings.ToLower(ep.Method)}
		if _, dup := r.endpoints[k]; dup {
			return nil, fmt.Errorf("%s %s: duplicate endpoint", strings.ToUpper(k.method), k.path)
		}
		r.endpoints[k] = ep.Response
	}
	return r, nil
}

// Lookup returns the response registered for path and method.
func (r *Registry) Lookup(path, method string) (response.Spec, bool) {
	spec, ok := r.endpoints[key{path: path, method: strings.ToLower(method)}]
	return spec, ok
}

// Len returns the number of registered endpoints.
func (r *Registry) Len() int {
	return len(r.endpoints)
}

// Endpoints returns every registered endpoint sorted by path, then method.
func (r *Registry) Endpoints() []Endpoint {
	out := make([]Endpoint, 0, len(r.endpoints))
	for k, spec := range r.endpoints {
		out = append(out, Endpoint{Path: k.path, Method: k.method, Response: spec})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}
