// Package pipeline runs one full formatting pass: parse the raw text,
// resolve nested JSON strings, serialize the resolved tree, and build the
// line correspondence back to the original text.
//
// A run is one atomic unit of work. Its outputs are published together in a
// Result so a caller can never pair the resolved text of one run with the
// line map of another. On a parse error no Result is produced and the caller
// keeps whatever it had from the previous run.
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rajan-personal/jsonstring-formatter/internal/linemap"
	"github.com/rajan-personal/jsonstring-formatter/internal/models"
	"github.com/rajan-personal/jsonstring-formatter/internal/parser"
	"github.com/rajan-personal/jsonstring-formatter/internal/resolver"
	"github.com/rajan-personal/jsonstring-formatter/internal/serializer"
)

// Options controls a pipeline run. Zero values select the defaults: indent
// width 2, resolve depth 64, no logging.
type Options struct {
	IndentWidth  int
	ResolveDepth int
	Logger       *log.Logger
}

// Result is the output of one successful run, published as a unit.
type Result struct {
	// Resolved is the resolved value tree.
	Resolved models.Value
	// Text is the serialized rendering of Resolved.
	Text string
	// Lines maps resolved-text line numbers to original-text line numbers.
	Lines linemap.LineMap
}

// Run parses raw, resolves nested JSON strings, serializes the result, and
// builds the line correspondence against the raw text. Only the top-level
// parse can fail; resolution and serialization are total.
func Run(raw string, opts Options) (*Result, error) {
	logger := opts.logger()
	start := time.Now()

	root, err := parser.ParseString(raw)
	if err != nil {
		return nil, err
	}

	r := resolver.NewResolver()
	if opts.ResolveDepth > 0 {
		r.MaxDepth = opts.ResolveDepth
	}
	resolved := r.Resolve(root)

	text := serializer.NewSerializer(opts.IndentWidth).Serialize(resolved)
	lines := linemap.Build(raw, text)

	logger.Debug("pipeline run complete",
		"original_lines", strings.Count(raw, "\n")+1,
		"resolved_lines", strings.Count(text, "\n")+1,
		"mapped_lines", len(lines),
		"elapsed", time.Since(start).Round(time.Microsecond),
	)

	return &Result{Resolved: resolved, Text: text, Lines: lines}, nil
}

// Reformat parses raw and serializes it without resolving nested JSON
// strings, for callers that only want the original pretty-printed.
func Reformat(raw string, opts Options) (string, error) {
	root, err := parser.ParseString(raw)
	if err != nil {
		return "", err
	}
	text := serializer.NewSerializer(opts.IndentWidth).Serialize(root)
	opts.logger().Debug("reformat complete",
		"lines", strings.Count(text, "\n")+1,
	)
	return text, nil
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}
