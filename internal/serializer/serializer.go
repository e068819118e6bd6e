package serializer

import (
	"encoding/json"
	"strings"

	"github.com/rajan-personal/jsonstring-formatter/internal/models"
)

// DefaultIndentWidth is used when a Serializer is constructed with a
// non-positive width. The reference UI offers 2, 4, and 8.
const DefaultIndentWidth = 2

// Serializer renders a value model as indented JSON text. Output is
// deterministic: the same value and indent width always yield byte-identical
// text, and object keys appear in stored order, never re-sorted.
type Serializer struct {
	IndentWidth int
}

// NewSerializer creates a Serializer with the given indent width.
// Non-positive widths fall back to DefaultIndentWidth.
func NewSerializer(indentWidth int) *Serializer {
	if indentWidth <= 0 {
		indentWidth = DefaultIndentWidth
	}
	return &Serializer{IndentWidth: indentWidth}
}

// Serialize renders value as indented JSON text with no trailing newline.
// Every value representable in the model is serializable; there is no error
// path.
func (s *Serializer) Serialize(value models.Value) string {
	var b strings.Builder
	s.write(&b, value, 0)
	return b.String()
}

func (s *Serializer) write(b *strings.Builder, value models.Value, depth int) {
	switch v := value.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case json.Number:
		b.WriteString(v.String())
	case string:
		b.WriteString(quote(v))
	case models.Array:
		if len(v) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i, element := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
			s.indent(b, depth+1)
			s.write(b, element, depth+1)
		}
		b.WriteByte('\n')
		s.indent(b, depth)
		b.WriteByte(']')
	case models.Object:
		if len(v) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteByte('{')
		for i, member := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
			s.indent(b, depth+1)
			b.WriteString(quote(member.Key))
			b.WriteString(": ")
			s.write(b, member.Value, depth+1)
		}
		b.WriteByte('\n')
		s.indent(b, depth)
		b.WriteByte('}')
	default:
		// Values built programmatically may carry raw Go numbers; the
		// stdlib renders them with standard JSON literal syntax.
		data, err := json.Marshal(v)
		if err != nil {
			b.WriteString("null")
			return
		}
		b.Write(data)
	}
}

func (s *Serializer) indent(b *strings.Builder, depth int) {
	for i := 0; i < depth*s.IndentWidth; i++ {
		b.WriteByte(' ')
	}
}

// quote renders a string as a JSON string literal with standard escaping.
// An encoder with HTML escaping off is used so '<', '>' and '&' stay
// readable instead of being rewritten as unicode escape sequences.
func quote(raw string) string {
	var b strings.Builder
	encoder := json.NewEncoder(&b)
	encoder.SetEscapeHTML(false)
	// Encoding a plain string cannot fail.
	_ = encoder.Encode(raw)
	return strings.TrimSuffix(b.String(), "\n")
}
