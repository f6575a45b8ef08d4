// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package expression

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/Anexen/sqc/sql"
)

// builtin is a scalar function body: it receives already-evaluated
// arguments and returns a result.
type builtin func(args []sql.Value) (sql.Value, error)

var builtins = map[string]builtin{
	"length": lengthFn,
	"round":  roundFn,
}

// ScalarFunction is a named call over a fixed argument list (spec §3,
// supplemented from the original's function registry: `length`, `round`).
type ScalarFunction struct {
	Name string
	Args []Expr
}

// NewScalarFunction builds name(args...). The name is matched
// case-insensitively against the builtin registry at Eval time.
func NewScalarFunction(name string, args []Expr) *ScalarFunction {
	return &ScalarFunction{Name: name, Args: args}
}

func (f *ScalarFunction) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(parts, ", "))
}

// Eval resolves the function by name and evaluates it over its evaluated
// arguments. Unlike Binary/Unary, functions do not blanket-propagate NULL:
// each builtin decides for itself (both `length` and `round` return NULL
// when given a NULL argument).
func (f *ScalarFunction) Eval(ctx *sql.Context, row *sql.Row) (sql.Value, error) {
	fn, ok := builtins[strings.ToLower(f.Name)]
	if !ok {
		return nil, fmt.Errorf("expression: unknown function %q", f.Name)
	}

	args := make([]sql.Value, len(f.Args))
	for i, a := range f.Args {
		v, err := a.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	v, err := fn(args)
	return v, wrap(err)
}

func lengthFn(args []sql.Value) (sql.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("length() takes exactly 1 argument, got %d", len(args))
	}
	if sql.IsNull(args[0]) {
		return sql.Null, nil
	}
	n, err := args[0].Len()
	if err != nil {
		return nil, err
	}
	return sql.Number(float64(n)), nil
}

func roundFn(args []sql.Value) (sql.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("round() takes exactly 2 arguments, got %d", len(args))
	}
	if sql.IsNull(args[0]) || sql.IsNull(args[1]) {
		return sql.Null, nil
	}
	x, err := cast.ToFloat64E(args[0].Unwrap())
	if err != nil {
		return nil, fmt.Errorf("round(): first argument is not numeric: %w", err)
	}
	n, err := cast.ToIntE(args[1].Unwrap())
	if err != nil {
		return nil, fmt.Errorf("round(): second argument is not an integer: %w", err)
	}

	scale := 1.0
	for i := 0; i < n; i++ {
		scale *= 10
	}
	for i := 0; i > n; i-- {
		scale /= 10
	}

	rounded := roundHalfAwayFromZero(x*scale) / scale
	return sql.Number(rounded), nil
}

func roundHalfAwayFromZero(x float64) float64 {
	if x < 0 {
		return -roundHalfAwayFromZero(-x)
	}
	frac := x - float64(int64(x))
	if frac >= 0.5 {
		return float64(int64(x)) + 1
	}
	return float64(int64(x))
}
