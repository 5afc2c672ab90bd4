package config

// File is one endpoint table document.
type File struct {
	// Paths maps a literal request path to its methods. Method keys are
	// lower-cased while parsing.
	Paths map[string]map[string]Endpoint `json:"paths" yaml:"paths" validate:"required,dive,keys,startswith=/,endkeys,required,dive,keys,oneof=get head post put patch delete options,endkeys"`
}

// Endpoint is the configuration of one path and method.
type Endpoint struct {
	Response Response `json:"response" yaml:"response" validate:"required"`
}

// Response is the raw form of a response.Spec. Which fields apply depends
// on Type.
type Response struct {
	Type    string            `json:"type" yaml:"type" validate:"required,oneof=static paging"`
	Status  int               `json:"status" yaml:"status" validate:"min=100,max=599"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// static
	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	// paging
	PageParam      string `json:"page_param,omitempty" yaml:"page_param,omitempty" validate:"required_if=Type paging"`
	PerPageParam   string `json:"per_page_param,omitempty" yaml:"per_page_param,omitempty" validate:"required_if=Type paging"`
	DefaultPerPage int    `json:"default_per_page,omitempty" yaml:"default_per_page,omitempty" validate:"required_if=Type paging,min=0"`
	PageOrigin     int    `json:"page_origin,omitempty" yaml:"page_origin,omitempty" validate:"oneof=0 1"`
	Template       any    `json:"template,omitempty" yaml:"template,omitempty" validate:"required_if=Type paging"`
	Items          []any  `json:"items,omitempty" yaml:"items,omitempty" validate:"required_if=Type paging"`
}

// Methods accepted as keys under a path.
var Methods = []string{"get", "head", "post", "put", "patch", "delete", "options"}
