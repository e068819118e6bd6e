package resolver

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajan-personal/jsonstring-formatter/internal/models"
	"github.com/rajan-personal/jsonstring-formatter/internal/parser"
)

func mustParse(t *testing.T, input string) models.Value {
	t.Helper()
	v, err := parser.ParseString(input)
	require.NoError(t, err)
	return v
}

func TestResolve_NestedJSONString(t *testing.T) {
	input := mustParse(t, `{"data":"{\"name\":\"John\",\"age\":30}"}`)

	resolved := NewResolver().Resolve(input)

	expected := models.Object{
		{Key: "data", Value: models.Object{
			{Key: "name", Value: "John"},
			{Key: "age", Value: json.Number("30")},
		}},
	}
	assert.Equal(t, expected, resolved)
}

func TestResolve_PlainStringsPreserved(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain text", `{"msg":"hello world"}`},
		{"almost JSON", `{"msg":"{not quite json}"}`},
		{"empty string", `{"msg":""}`},
		{"whitespace string", `{"msg":"   "}`},
		{"truncated JSON", `{"msg":"{\"a\":"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := mustParse(t, tt.input)
			resolved := NewResolver().Resolve(input)
			assert.Equal(t, input, resolved, "non-JSON strings must be kept verbatim")
		})
	}
}

func TestResolve_ScalarStringsUnwrap(t *testing.T) {
	// Any string that parses under the standard JSON grammar is replaced,
	// scalars included.
	tests := []struct {
		name     string
		input    string
		expected models.Value
	}{
		{"number string", `"42"`, json.Number("42")},
		{"float string", `"3.14"`, json.Number("3.14")},
		{"boolean string", `"true"`, true},
		{"null string", `"null"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := NewResolver().Resolve(mustParse(t, tt.input))
			assert.Equal(t, tt.expected, resolved)
		})
	}
}

func TestResolve_MultiplyNested(t *testing.T) {
	// Three levels of string encoding unwrap fully in one Resolve call.
	inner := `{"deep":true}`
	level2, err := json.Marshal(inner)
	require.NoError(t, err)
	level3, err := json.Marshal(string(level2))
	require.NoError(t, err)

	input := mustParse(t, `{"payload":`+string(level3)+`}`)
	resolved := NewResolver().Resolve(input)

	expected := models.Object{
		{Key: "payload", Value: models.Object{
			{Key: "deep", Value: true},
		}},
	}
	assert.Equal(t, expected, resolved)
}

func TestResolve_ArraysElementWise(t *testing.T) {
	input := mustParse(t, `["{\"a\":1}", "plain", "[1,2]"]`)
	resolved := NewResolver().Resolve(input)

	expected := models.Array{
		models.Object{{Key: "a", Value: json.Number("1")}},
		"plain",
		models.Array{json.Number("1"), json.Number("2")},
	}
	assert.Equal(t, expected, resolved)
}

func TestResolve_KeysNeverResolved(t *testing.T) {
	// A key that looks like JSON stays a key.
	input := mustParse(t, `{"{\"k\":1}": "value"}`)
	resolved := NewResolver().Resolve(input)

	obj, ok := resolved.(models.Object)
	require.True(t, ok)
	require.Len(t, obj, 1)
	assert.Equal(t, `{"k":1}`, obj[0].Key)
}

func TestResolve_ScalarsUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		input models.Value
	}{
		{"null", nil},
		{"bool", true},
		{"number", json.Number("12.5")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.input, NewResolver().Resolve(tt.input))
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	input := mustParse(t, `{"data":"{\"list\":[\"{\\\"x\\\":1}\"]}","note":"hi"}`)

	r := NewResolver()
	once := r.Resolve(input)
	twice := r.Resolve(once)

	assert.Equal(t, once, twice, "a resolved tree is a fixpoint")
}

func TestResolve_InputNotMutated(t *testing.T) {
	input := mustParse(t, `{"data":"{\"a\":1}"}`)
	original := mustParse(t, `{"data":"{\"a\":1}"}`)

	_ = NewResolver().Resolve(input)

	assert.Equal(t, original, input)
}

func TestResolve_DepthBound(t *testing.T) {
	// A string wrapped in more encoding layers than MaxDepth allows must
	// come back partially unresolved instead of blowing the stack.
	const layers = 12
	payload := `{"v":1}`
	for i := 0; i < layers; i++ {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		payload = string(encoded)
	}

	r := &Resolver{MaxDepth: 4}
	resolved := r.Resolve(payload)

	// The bound leaves a string leaf somewhere; the full unwrap would
	// produce an object.
	_, isObject := resolved.(models.Object)
	assert.False(t, isObject)

	// The default bound is deep enough to unwrap it completely.
	full := NewResolver().Resolve(payload)
	expected := models.Object{{Key: "v", Value: json.Number("1")}}
	assert.Equal(t, expected, full)
}

func TestResolve_DeepStructure(t *testing.T) {
	// Structural nesting below the bound resolves fine.
	depth := 30
	input := strings.Repeat(`{"n":`, depth) + `"{\"leaf\":true}"` + strings.Repeat(`}`, depth)

	resolved := NewResolver().Resolve(mustParse(t, input))

	current := resolved
	for i := 0; i < depth; i++ {
		obj, ok := current.(models.Object)
		require.True(t, ok, "level %d should be an object", i)
		require.Len(t, obj, 1)
		current = obj[0].Value
	}
	assert.Equal(t, models.Object{{Key: "leaf", Value: true}}, current)
}
