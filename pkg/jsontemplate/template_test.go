package jsontemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testValues = map[string]any{"_index": 0, "_value": []any{}}
	testText   = "_text"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template any
		values   map[string]any
		expected any
	}{
		{
			name:     "root leaf receives a sequence",
			template: "$_value",
			values:   map[string]any{"_value": []any{1, 2, 3}},
			expected: []any{1, 2, 3},
		},
		{
			name:     "mapping value",
			template: map[string]any{"a": 1, "b": "$_value"},
			values:   map[string]any{"_value": 42},
			expected: map[string]any{"a": 1, "b": 42},
		},
		{
			name: "nested inside sequence",
			template: []any{
				map[string]any{"index": "$_index", "value": 41},
				map[string]any{"index": 1, "value": "$_value"},
			},
			values: map[string]any{"_index": 0, "_value": 42},
			expected: []any{
				map[string]any{"index": 0, "value": 41},
				map[string]any{"index": 1, "value": 42},
			},
		},
		{
			name:     "text placeholder",
			template: map[string]any{"text": map[string]any{"$_text": "index: {{ _index }}, value: {{ _value }}"}},
			values:   map[string]any{"_index": 0, "_value": []any{42}},
			expected: map[string]any{"text": "index: 0, value: [42]"},
		},
		{
			name:     "text placeholder with arithmetic",
			template: map[string]any{"$_text": "next={{ _index + 1 }}"},
			values:   map[string]any{"_index": 4, "_value": []any{}},
			expected: "next=5",
		},
		{
			name:     "text placeholder with comparison and length",
			template: map[string]any{"$_text": "{{ len(_value) > _index ? \"more\" : \"done\" }}"},
			values:   map[string]any{"_index": 1, "_value": []any{"a", "b"}},
			expected: "more",
		},
		{
			name:     "expression containing a closing brace",
			template: map[string]any{"$_text": "{{ {\"i\": _index}.i }}!"},
			values:   map[string]any{"_index": 1, "_value": []any{}},
			expected: "1!",
		},
		{
			name:     "text placeholder encodes non-string results as JSON",
			template: map[string]any{"$_text": "{{ _value }}"},
			values:   map[string]any{"_index": 0, "_value": []any{"a", "b"}},
			expected: `["a","b"]`,
		},
		{
			name:     "placeholder as key is left alone",
			template: map[string]any{"$_value": "$_value"},
			values:   map[string]any{"_value": 7},
			expected: map[string]any{"$_value": 7},
		},
		{
			name:     "undeclared token passes through",
			template: map[string]any{"a": "$_other", "b": "$", "c": "_value"},
			values:   map[string]any{"_value": 7},
			expected: map[string]any{"a": "$_other", "b": "$", "c": "_value"},
		},
		{
			name:     "non-string scalars pass through",
			template: map[string]any{"n": nil, "b": true, "f": 1.5},
			values:   map[string]any{},
			expected: map[string]any{"n": nil, "b": true, "f": 1.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tmpl, err := Parse(tt.template, testValues, testText)
			require.NoError(t, err)

			got, err := tmpl.Expand(tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExpand_DoesNotMutateTemplate(t *testing.T) {
	t.Parallel()

	source := map[string]any{
		"list": []any{"$_value", map[string]any{"inner": "$_value"}},
	}
	tmpl, err := Parse(source, testValues, testText)
	require.NoError(t, err)

	first, err := tmpl.Expand(map[string]any{"_value": 1})
	require.NoError(t, err)
	second, err := tmpl.Expand(map[string]any{"_value": 2})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"list": []any{1, map[string]any{"inner": 1}}}, first)
	assert.Equal(t, map[string]any{"list": []any{2, map[string]any{"inner": 2}}}, second)
	assert.Equal(t, map[string]any{
		"list": []any{"$_value", map[string]any{"inner": "$_value"}},
	}, source)
}

func TestParse_InvalidPlaceholders(t *testing.T) {
	t.Parallel()

	template := map[string]any{
		"a": 1,
		"b": "$_value",
		"c": map[string]any{"$_text": "value: {{ _value }}"},
	}

	tests := []struct {
		name   string
		values map[string]any
		text   string
	}{
		{"empty value name", map[string]any{"": 0}, "_text"},
		{"empty text name", map[string]any{"_value": 0}, ""},
		{"dollar in name", map[string]any{"$abc": 0}, "_text"},
		{"leading digit", map[string]any{"_value": 0}, "0x"},
		{"text shadows value", map[string]any{"abc": 0, "def": 0}, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(template, tt.values, tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPlaceholder)
		})
	}
}

func TestParse_BadExpression(t *testing.T) {
	t.Parallel()

	_, err := Parse(map[string]any{"$_text": "{{ _index + }}"}, testValues, testText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "_index +")
}

func TestParse_UnknownVariableInExpression(t *testing.T) {
	t.Parallel()

	_, err := Parse(map[string]any{"$_text": "{{ missing }}"}, testValues, testText)
	require.Error(t, err)
}
