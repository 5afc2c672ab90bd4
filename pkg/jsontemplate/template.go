package jsontemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrInvalidPlaceholder is returned by Parse when a placeholder name is unusable.
var ErrInvalidPlaceholder = errors.New("invalid placeholder")

// placeholderNameRegex is the set of names usable both as "$name" tokens and
// as identifiers inside text expressions.
var placeholderNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// expressionRegex matches {{expression}} segments with optional whitespace.
// The expression may itself contain "}", as in a map literal.
var expressionRegex = regexp.MustCompile(`\{\{\s*(.+?)\s*\}\}`)

// Template is a parsed template tree. It is immutable after Parse and safe
// for concurrent use by multiple goroutines.
type Template struct {
	root    any
	values  map[string]struct{}
	textKey string
	texts   map[string]*textTemplate
}

// textTemplate is a compiled text placeholder: literal text interleaved with
// expr programs.
type textTemplate struct {
	segments []segment
}

type segment struct {
	literal string
	source  string
	program *vm.Program
}

// Parse validates the placeholder names, walks the tree and compiles every
// text placeholder it finds. The tree is expected to be built from
// map[string]any, []any and scalar leaves, as produced by JSON or YAML decoding.
//
// valuePlaceholders maps each value placeholder name to a sample value. The
// sample's type is what text expressions are type-checked against, so Expand
// must bind values of the same types.
func Parse(tree any, valuePlaceholders map[string]any, textPlaceholder string) (*Template, error) {
	names := slices.Sorted(maps.Keys(valuePlaceholders))
	seen := make(map[string]struct{}, len(names)+1)
	for _, name := range append(names, textPlaceholder) {
		if err := validateName(name, seen); err != nil {
			return nil, err
		}
		seen[name] = struct{}{}
	}

	t := &Template{
		root:    tree,
		values:  make(map[string]struct{}, len(names)),
		textKey: "$" + textPlaceholder,
		texts:   make(map[string]*textTemplate),
	}
	for _, name := range names {
		t.values[name] = struct{}{}
	}

	env := make(map[string]any, len(names))
	maps.Copy(env, valuePlaceholders)
	if err := t.compileTexts(tree, env); err != nil {
		return nil, err
	}
	return t, nil
}

func validateName(name string, seen map[string]struct{}) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidPlaceholder)
	}
	if !placeholderNameRegex.MatchString(name) {
		return fmt.Errorf("%w: `%s` is not a valid name", ErrInvalidPlaceholder, name)
	}
	if _, dup := seen[name]; dup {
		return fmt.Errorf("%w: `%s` is declared twice", ErrInvalidPlaceholder, name)
	}
	return nil
}

func (t *Template) compileTexts(node any, env map[string]any) error {
	switch n := node.(type) {
	case map[string]any:
		if text, ok := n[t.textKey].(string); ok {
			if _, done := t.texts[text]; done {
				return nil
			}
			compiled, err := compileText(text, env)
			if err != nil {
				return err
			}
			t.texts[text] = compiled
			return nil
		}
		for _, v := range n {
			if err := t.compileTexts(v, env); err != nil {
				return err
			}
		}
	case []any:
		for _, v := range n {
			if err := t.compileTexts(v, env); err != nil {
				return err
			}
		}
	}
	return nil
}

func compileText(text string, env map[string]any) (*textTemplate, error) {
	tt := &textTemplate{}
	last := 0
	for _, loc := range expressionRegex.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			tt.segments = append(tt.segments, segment{literal: text[last:loc[0]]})
		}
		source := strings.TrimSpace(text[loc[2]:loc[3]])
		program, err := expr.Compile(source, expr.Env(env))
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", source, err)
		}
		tt.segments = append(tt.segments, segment{source: source, program: program})
		last = loc[1]
	}
	if last < len(text) {
		tt.segments = append(tt.segments, segment{literal: text[last:]})
	}
	return tt, nil
}

// Expand returns a fresh tree with every placeholder replaced.
//
// A string leaf equal to "$name" for a declared value placeholder is replaced
// by values[name] as-is, so numbers stay numbers and sequences stay
// sequences. A mapping holding the text placeholder key is replaced by the
// rendered string. Mapping keys are never substituted. The parsed template
// itself is left untouched.
func (t *Template) Expand(values map[string]any) (any, error) {
	return t.expand(t.root, values)
}

func (t *Template) expand(node any, values map[string]any) (any, error) {
	switch n := node.(type) {
	case map[string]any:
		if text, ok := n[t.textKey].(string); ok {
			return t.texts[text].render(values)
		}
		out := make(map[string]any, len(n))
		for k, v := range n {
			expanded, err := t.expand(v, values)
			if err != nil {
				return nil, err
			}
			out[k] = expanded
		}
		return out, nil
	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			expanded, err := t.expand(v, values)
			if err != nil {
				return nil, err
			}
			out[i] = expanded
		}
		return out, nil
	case string:
		if name, ok := strings.CutPrefix(n, "$"); ok {
			if _, declared := t.values[name]; declared {
				if v, present := values[name]; present {
					return v, nil
				}
			}
		}
		return n, nil
	default:
		return n, nil
	}
}

func (tt *textTemplate) render(values map[string]any) (string, error) {
	var b strings.Builder
	for _, seg := range tt.segments {
		if seg.program == nil {
			b.WriteString(seg.literal)
			continue
		}
		result, err := expr.Run(seg.program, values)
		if err != nil {
			return "", fmt.Errorf("eval %q: %w", seg.source, err)
		}
		s, err := stringify(result)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func stringify(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return "", fmt.Errorf("format expression result: %w", err)
		}
		return string(data), nil
	}
}
