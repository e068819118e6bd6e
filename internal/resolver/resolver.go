package resolver

import (
	"github.com/rajan-personal/jsonstring-formatter/internal/models"
	"github.com/rajan-personal/jsonstring-formatter/internal/parser"
)

// DefaultMaxDepth bounds the combined structural descent and string-unwrap
// recursion. Real documents stay far below it; adversarial deeply nested
// input hits the bound and keeps the offending string as a plain leaf.
const DefaultMaxDepth = 64

// Resolver recursively replaces string leaves that themselves contain
// serialized JSON with their parsed value.
type Resolver struct {
	// MaxDepth caps recursion. At the cap a string is left verbatim, the
	// same policy applied to strings that fail to parse.
	MaxDepth int
}

// NewResolver creates a Resolver with the default depth bound.
func NewResolver() *Resolver {
	return &Resolver{MaxDepth: DefaultMaxDepth}
}

// Resolve returns a copy of value in which every string that parses as JSON
// has been replaced by its parsed, recursively resolved structure. It is
// total: strings that do not parse are kept verbatim, never reported as
// errors, and the input value is never mutated.
func (r *Resolver) Resolve(value models.Value) models.Value {
	return r.resolve(value, r.MaxDepth)
}

func (r *Resolver) resolve(value models.Value, depth int) models.Value {
	if depth <= 0 {
		return value
	}

	switch v := value.(type) {
	case models.Object:
		// Keys are data, not candidates for resolution; only values recurse.
		resolved := make(models.Object, len(v))
		for i, member := range v {
			resolved[i] = models.Member{Key: member.Key, Value: r.resolve(member.Value, depth-1)}
		}
		return resolved
	case models.Array:
		resolved := make(models.Array, len(v))
		for i, element := range v {
			resolved[i] = r.resolve(element, depth-1)
		}
		return resolved
	case string:
		parsed, err := parser.ParseString(v)
		if err != nil {
			// Most strings are plain text; keeping them as-is is the
			// expected path, not a failure.
			return v
		}
		return r.resolve(parsed, depth-1)
	default:
		// null, bool, json.Number
		return value
	}
}
