package response

import (
	"errors"
	"fmt"
	"maps"

	"github.com/getmockd/serverify/pkg/jsontemplate"
)

// Placeholder names understood by paging templates.
const (
	PlaceholderContents = "_contents"
	PlaceholderPage     = "_page"
	PlaceholderTotal    = "_total"
	PlaceholderText     = "_text"
)

// Spec describes how a matched mock request is answered.
// The set of implementations is closed: Static and Paging.
type Spec interface {
	// Type returns the variant tag used in configuration files.
	Type() string

	isSpec()
}

// Variant tags.
const (
	TypeStatic = "static"
	TypePaging = "paging"
)

// Static returns a fixed status, header set and body.
type Static struct {
	Status  int
	Headers map[string]string
	Body    string
}

// NewStatic creates a Static spec. A nil header map is treated as empty.
func NewStatic(status int, headers map[string]string, body string) *Static {
	return &Static{Status: status, Headers: cloneHeaders(headers), Body: body}
}

// Type implements Spec.
func (*Static) Type() string { return TypeStatic }

func (*Static) isSpec() {}

// Paging serves one page of Items per request, rendered through Template.
type Paging struct {
	Status         int
	Headers        map[string]string
	PageParam      string
	PerPageParam   string
	DefaultPerPage int
	PageOrigin     int
	Template       *jsontemplate.Template
	Items          []any
}

// PagingOptions holds the raw configuration of a paging response.
type PagingOptions struct {
	Status         int
	Headers        map[string]string
	PageParam      string
	PerPageParam   string
	DefaultPerPage int
	PageOrigin     int
	Template       any
	Items          []any
}

// NewPaging validates opts and compiles the template.
func NewPaging(opts PagingOptions) (*Paging, error) {
	if opts.DefaultPerPage <= 0 {
		return nil, fmt.Errorf("default_per_page must be positive, got %d", opts.DefaultPerPage)
	}
	if opts.PageOrigin != 0 && opts.PageOrigin != 1 {
		return nil, fmt.Errorf("page_origin must be 0 or 1, got %d", opts.PageOrigin)
	}
	if opts.PageParam == "" || opts.PerPageParam == "" {
		return nil, errors.New("page_param and per_page_param are required")
	}

	tmpl, err := jsontemplate.Parse(
		opts.Template,
		map[string]any{
			PlaceholderContents: []any{},
			PlaceholderPage:     0,
			PlaceholderTotal:    0,
		},
		PlaceholderText,
	)
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}

	items := opts.Items
	if items == nil {
		items = []any{}
	}

	return &Paging{
		Status:         opts.Status,
		Headers:        cloneHeaders(opts.Headers),
		PageParam:      opts.PageParam,
		PerPageParam:   opts.PerPageParam,
		DefaultPerPage: opts.DefaultPerPage,
		PageOrigin:     opts.PageOrigin,
		Template:       tmpl,
		Items:          items,
	}, nil
}

// Type implements Spec.
func (*Paging) Type() string { return TypePaging }

func (*Paging) isSpec() {}

func cloneHeaders(h map[string]string) map[string]string {
	if h == nil {
		return map[string]string{}
	}
	return maps.Clone(h)
}
