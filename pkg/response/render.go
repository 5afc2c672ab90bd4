package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Result is the rendered outcome of a Spec.
type Result struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// Render produces the response for spec given the request's query parameters.
// It has no side effects and may be called concurrently.
func Render(spec Spec, query map[string]string) (*Result, error) {
	switch s := spec.(type) {
	case *Static:
		return renderStatic(s), nil
	case *Paging:
		return renderPaging(s, query)
	default:
		return nil, fmt.Errorf("unsupported response spec %T", spec)
	}
}

func renderStatic(s *Static) *Result {
	return &Result{
		Status:  s.Status,
		Headers: maps.Clone(s.Headers),
		Body:    []byte(s.Body),
	}
}

// Page is the slice of items selected for one request.
type Page struct {
	// Number is the page number actually served, counted from PageOrigin.
	Number int
	// Contents are the items on the page, in configured order.
	Contents []any
	// Total is the number of items across all pages.
	Total int
}

// Select computes the page addressed by query. Missing or malformed
// page/per-page parameters fall back to the first page and the default page
// size; a page before the origin is clamped to the first page.
func (p *Paging) Select(query map[string]string) Page {
	page := parseParam(query, p.PageParam, 0, p.PageOrigin)
	perPage := parseParam(query, p.PerPageParam, 1, p.DefaultPerPage)

	index := max(page-p.PageOrigin, 0)

	total := len(p.Items)
	start := total
	if index <= total/perPage {
		start = min(index*perPage, total)
	}
	end := start + min(perPage, total-start)

	return Page{
		Number:   index + p.PageOrigin,
		Contents: slices.Clone(p.Items[start:end]),
		Total:    total,
	}
}

// parseParam reads an integer query parameter no smaller than minValue.
func parseParam(query map[string]string, name string, minValue, fallback int) int {
	raw, ok := query[name]
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < minValue {
		return fallback
	}
	return n
}

func renderPaging(p *Paging, query map[string]string) (*Result, error) {
	page := p.Select(query)

	tree, err := p.Template.Expand(map[string]any{
		PlaceholderContents: page.Contents,
		PlaceholderPage:     page.Number,
		PlaceholderTotal:    page.Total,
	})
	if err != nil {
		return nil, fmt.Errorf("render paging template: %w", err)
	}

	body, err := encodeJSON(tree)
	if err != nil {
		return nil, fmt.Errorf("encode paging body: %w", err)
	}

	return &Result{
		Status:  p.Status,
		Headers: maps.Clone(p.Headers),
		Body:    body,
	}, nil
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
