package logsvc

import (
	"strings"

	"github.com/google/cel-go/cel"
)

// celFilter wraps a compiled CEL program evaluated once per candidate line.
// When disabled, Eval always returns true. The expression sees the
// normalized line as `text` and its byte length as `size`, e.g.
// `text.contains("timeout") && size < 500`.
type celFilter struct {
	prog    cel.Program
	enabled bool
}

func newCELFilter(expr string) (celFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return celFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("text", cel.StringType),
		cel.Variable("size", cel.IntType),
	)
	if err != nil {
		return celFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return celFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return celFilter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return celFilter{}, err
	}
	return celFilter{prog: prog, enabled: true}, nil
}

// Eval evaluates the expression against one line. Evaluation errors drop
// the line rather than failing the scan.
func (f celFilter) Eval(line string) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"text": line,
		"size": int64(len(line)),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
