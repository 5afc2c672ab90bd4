package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// ErrInvalidFilter is returned when a filter expression cannot be parsed.
var ErrInvalidFilter = errors.New("invalid filter")

// Filter narrows a session history. Zero-value fields match everything.
type Filter struct {
	// Method matches the request method, case-insensitively.
	Method string

	// Path matches the request path exactly.
	Path string

	// BodyPath keeps entries whose JSON body has at least one match.
	BodyPath jp.Expr
}

// NewFilter builds a Filter, compiling bodyPath as a JSONPath expression.
func NewFilter(method, path, bodyPath string) (*Filter, error) {
	f := &Filter{Method: method, Path: path}
	if bodyPath != "" {
		x, err := jp.ParseString(bodyPath)
		if err != nil {
			return nil, fmt.Errorf("%w: body_path %q: %v", ErrInvalidFilter, bodyPath, err)
		}
		f.BodyPath = x
	}
	return f, nil
}

// Match reports whether e passes every condition of f.
func (f *Filter) Match(e HistoryEntry) bool {
	if f.Method != "" && !strings.EqualFold(f.Method, e.Method) {
		return false
	}
	if f.Path != "" && f.Path != e.Path {
		return false
	}
	if f.BodyPath != nil {
		data, err := oj.ParseString(e.Body)
		if err != nil {
			return false
		}
		if len(f.BodyPath.Get(data)) == 0 {
			return false
		}
	}
	return true
}

// Apply returns the entries of history that match f, preserving order.
// A nil Filter returns history unchanged.
func (f *Filter) Apply(history []HistoryEntry) []HistoryEntry {
	if f == nil {
		return history
	}
	out := make([]HistoryEntry, 0, len(history))
	for _, e := range history {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
