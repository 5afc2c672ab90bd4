// Package config loads endpoint tables for the stub server.
//
// An endpoint table maps paths and methods to responses:
//
//	paths:
//	  /hello:
//	    get:
//	      response:
//	        type: static
//	        status: 200
//	        headers:
//	          Content-Type: text/plain
//	        body: "Hello, World!"
//	  /friends:
//	    get:
//	      response:
//	        type: paging
//	        status: 200
//	        page_param: page
//	        per_page_param: per_page
//	        default_per_page: 10
//	        page_origin: 1
//	        template:
//	          friends: $_contents
//	          page: $_page
//	          total: $_total
//	        items: [...]
//
// Files are YAML (.yaml, .yml) or JSON. Several files, or doublestar globs
// such as mocks/**/*.yaml, can be combined with Load; a path and method
// declared in more than one file is an error.
//
// Validation happens in two passes: the raw document is checked against an
// embedded JSON Schema, then the decoded structs are checked with
// go-playground/validator. Both report a *ValidationError.
package config
