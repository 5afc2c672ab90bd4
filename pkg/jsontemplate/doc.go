// Package jsontemplate rewrites JSON-shaped trees by substituting placeholder
// tokens.
//
// A template is any tree of map[string]any, []any and scalars. Two kinds of
// placeholder are recognized:
//
//   - Value placeholders: a string leaf that is exactly "$name". The leaf is
//     replaced by the bound value without converting it to text.
//   - A text placeholder: a mapping with the key "$name" whose value is a
//     string. The whole mapping is replaced by that string after each
//     {{ expression }} segment has been evaluated with expr-lang/expr, with
//     the value placeholders available as variables.
//
// Example, with value placeholders _contents, _page, _total and text
// placeholder _text:
//
//	friends: $_contents
//	summary:
//	  $_text: "page {{ _page }} of {{ _total }}"
package jsontemplate
