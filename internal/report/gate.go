package report

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrGateFailed is returned by Gate.Check when the expression is false.
var ErrGateFailed = errors.New("report: gate failed")

// Gate is a compiled boolean expression over aggregate scores, such as
// "exact_match >= 0.9 && skipped == 0". Scores are proportions, not
// percentages.
type Gate struct {
	source  string
	program *vm.Program
}

// CompileGate compiles src against the given metric keys. Names other than
// the keys, seen and skipped fail to compile.
func CompileGate(src string, keys []string) (*Gate, error) {
	env := make(map[string]any, len(keys)+2)
	for _, k := range keys {
		env[k] = 0.0
	}
	env["seen"] = 0
	env["skipped"] = 0

	program, err := expr.Compile(src, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling gate %q: %w", src, err)
	}
	return &Gate{source: src, program: program}, nil
}

func (g *Gate) String() string { return g.source }

// Check evaluates the gate against r.
func (g *Gate) Check(r *Report) error {
	out, err := expr.Run(g.program, r.Env())
	if err != nil {
		return fmt.Errorf("evaluating gate %q: %w", g.source, err)
	}
	if ok, _ := out.(bool); !ok {
		return fmt.Errorf("%w: %s", ErrGateFailed, g.source)
	}
	return nil
}
