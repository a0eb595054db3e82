package pipeline

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/corpustools/zimdir/internal/archive"
	"github.com/corpustools/zimdir/internal/exclude"
)

// EntryFilter wraps a compiled CEL program evaluated against entry metadata.
// When disabled (empty expression), Keep always returns true.
type EntryFilter struct {
	prog    cel.Program
	enabled bool
}

// NewEntryFilter compiles a CEL expression over entry metadata. Available
// variables: id (int), title (string), namespace (one-character string),
// redirect (bool), deleted (bool). Compile failures are pattern errors.
func NewEntryFilter(expr string) (EntryFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return EntryFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("id", cel.IntType),
		cel.Variable("title", cel.StringType),
		cel.Variable("namespace", cel.StringType),
		cel.Variable("redirect", cel.BoolType),
		cel.Variable("deleted", cel.BoolType),
	)
	if err != nil {
		return EntryFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return EntryFilter{}, fmt.Errorf("%w: %v", exclude.ErrBadPattern, iss.Err())
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return EntryFilter{}, fmt.Errorf("%w: %v", exclude.ErrBadPattern, iss2.Err())
	}
	prog, err := env.Program(checked)
	if err != nil {
		return EntryFilter{}, err
	}
	return EntryFilter{prog: prog, enabled: true}, nil
}

// Keep evaluates the expression against an entry. When disabled, returns
// true. Evaluation errors drop the entry.
func (f EntryFilter) Keep(e archive.Entry) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"id":        int64(e.ID),
		"title":     e.Title,
		"namespace": string(rune(e.Namespace)),
		"redirect":  e.Redirect,
		"deleted":   e.Deleted,
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
