// Package rules evaluates the scoring formulas kept in the catalog. A
// formula is a CEL expression over the facts counted for one player, for
// example "player.structures" or "min(player.sectors, 7)".
package rules

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// Facts are the counts a formula can read as player.<name>.
type Facts map[string]int64

// Registry manages the CEL environment and the compiled formulas.
type Registry struct {
	env *cel.Env

	mu       sync.Mutex
	programs map[string]cel.Program
}

// NewRegistry initializes the CEL environment with the player facts and the
// helper functions.
func NewRegistry() (*Registry, error) {
	env, err := cel.NewEnv(
		cel.Variable("player", cel.MapType(cel.StringType, cel.IntType)),

		cel.Function("min",
			cel.Overload("min_int_int",
				[]*cel.Type{cel.IntType, cel.IntType},
				cel.IntType,
				cel.BinaryBinding(func(a, b ref.Val) ref.Val {
					if a.(types.Int) < b.(types.Int) {
						return a
					}
					return b
				}),
			),
		),
		cel.Function("max",
			cel.Overload("max_int_int",
				[]*cel.Type{cel.IntType, cel.IntType},
				cel.IntType,
				cel.BinaryBinding(func(a, b ref.Val) ref.Val {
					if a.(types.Int) > b.(types.Int) {
						return a
					}
					return b
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Registry{env: env, programs: make(map[string]cel.Program)}, nil
}

var defaultRegistry = sync.OnceValues(NewRegistry)

// Default returns the shared registry. It panics if the environment cannot
// be built, which is a build defect.
func Default() *Registry {
	r, err := defaultRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// Check compiles a formula and reports whether it yields an int.
func (r *Registry) Check(expression string) error {
	_, err := r.program(expression)
	return err
}

func (r *Registry) program(expression string) (cel.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prg, ok := r.programs[expression]; ok {
		return prg, nil
	}
	ast, iss := r.env.Compile(expression)
	if iss.Err() != nil {
		return nil, iss.Err()
	}
	if !ast.OutputType().IsExactType(cel.IntType) {
		return nil, fmt.Errorf("formula %q yields %s, want int", expression, ast.OutputType())
	}
	prg, err := r.env.Program(ast)
	if err != nil {
		return nil, err
	}
	r.programs[expression] = prg
	return prg, nil
}

// Eval runs a formula against one player's facts. Facts the formula reads
// but the player lacks are an error.
func (r *Registry) Eval(expression string, facts Facts) (int, error) {
	prg, err := r.program(expression)
	if err != nil {
		return 0, err
	}
	out, _, err := prg.Eval(map[string]any{"player": map[string]int64(facts)})
	if err != nil {
		return 0, err
	}
	n, ok := out.Value().(int64)
	if !ok {
		return 0, fmt.Errorf("formula %q yielded %T", expression, out.Value())
	}
	return int(n), nil
}
