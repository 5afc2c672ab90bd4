package config

import (
	"errors"
	"fmt"

	"github.com/getmockd/serverify/pkg/registry"
	"github.com/getmockd/serverify/pkg/response"
)

// Spec converts the raw response into a response.Spec.
func (r *Response) Spec() (response.Spec, error) {
	switch r.Type {
	case response.TypeStatic:
		return response.NewStatic(r.Status, r.Headers, r.Body), nil
	case response.TypePaging:
		return response.NewPaging(response.PagingOptions{
			Status:         r.Status,
			Headers:        r.Headers,
			PageParam:      r.PageParam,
			PerPageParam:   r.PerPageParam,
			DefaultPerPage: r.DefaultPerPage,
			PageOrigin:     r.PageOrigin,
			Template:       r.Template,
			Items:          r.Items,
		})
	default:
		return nil, fmt.Errorf("unknown response type %q", r.Type)
	}
}

// Endpoints converts every entry of f into a registry endpoint. Template
// errors are reported as a *ValidationError.
func (f *File) Endpoints() ([]registry.Endpoint, error) {
	result := &ValidationError{}
	var out []registry.Endpoint
	for path, methods := range f.Paths {
		for method, ep := range methods {
			spec, err := ep.Response.Spec()
			if err != nil {
				result.Add(fieldPath("paths", path, method, "response"), err.Error())
				continue
			}
			out = append(out, registry.Endpoint{Path: path, Method: method, Response: spec})
		}
	}
	if err := result.errOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// Load expands patterns, loads every file and builds the registry. The
// returned error names the offending file.
func Load(patterns []string) (*registry.Registry, error) {
	files, err := ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	merged := &File{Paths: make(map[string]map[string]Endpoint)}
	declaredIn := make(map[string]string)
	conflicts := &ValidationError{}

	for _, name := range files {
		f, err := LoadFile(name)
		if err != nil {
			return nil, &FileError{File: name, Err: err}
		}
		for path, methods := range f.Paths {
			if merged.Paths[path] == nil {
				merged.Paths[path] = make(map[string]Endpoint, len(methods))
			}
			for method, ep := range methods {
				field := fieldPath("paths", path, method)
				if prev, dup := declaredIn[field]; dup {
					conflicts.Add(field, fmt.Sprintf("declared in both %s and %s", prev, name))
					continue
				}
				declaredIn[field] = name
				merged.Paths[path][method] = ep
			}
		}
	}
	if err := conflicts.errOrNil(); err != nil {
		return nil, err
	}

	endpoints, err := merged.Endpoints()
	if err != nil {
		return nil, err
	}
	return registry.New(endpoints)
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
