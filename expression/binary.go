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

	"github.com/Anexen/sqc/sql"
)

// BinaryOp names the supported infix operators (spec §3), including the
// integer-division operator (`//`) and the subscript operator (`->`,
// lowered from `e[i]` by the planner).
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	IntDiv
	Mod
	Eq
	Gt
	Ge
	Lt
	Le
	And
	Or
	Arrow
)

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case IntDiv:
		return "//"
	case Mod:
		return "%"
	case Eq:
		return "="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Lt:
		return "<"
	case Le:
		return "<="
	case And:
		return "AND"
	case Or:
		return "OR"
	case Arrow:
		return "->"
	default:
		return "?"
	}
}

// Binary applies an infix operator to two operands.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// NewBinary builds (left op right).
func NewBinary(op BinaryOp, left, right Expr) *Binary {
	return &Binary{Op: op, Left: left, Right: right}
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// Eval implements spec §4.B Binary rules: both sides evaluated; NULL
// propagates except through AND/OR, which use host truthiness on each
// side; `->` returns NULL rather than erroring on a missing key.
func (b *Binary) Eval(ctx *sql.Context, row *sql.Row) (sql.Value, error) {
	left, err := b.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	right, err := b.Right.Eval(ctx, row)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case And:
		return sql.Bool(left.Truthy() && right.Truthy()), nil
	case Or:
		return sql.Bool(left.Truthy() || right.Truthy()), nil
	}

	if sql.IsNull(left) || sql.IsNull(right) {
		return sql.Null, nil
	}

	switch b.Op {
	case Add:
		v, err := left.Add(right)
		return v, wrap(err)
	case Sub:
		v, err := left.Sub(right)
		return v, wrap(err)
	case Mul:
		v, err := left.Mul(right)
		return v, wrap(err)
	case Div:
		v, err := left.Div(right)
		return v, wrap(err)
	case IntDiv:
		v, err := left.FloorDiv(right)
		return v, wrap(err)
	case Mod:
		v, err := left.Mod(right)
		return v, wrap(err)
	case Eq:
		ok, err := left.Equals(right)
		if err != nil {
			return nil, wrap(err)
		}
		return sql.Bool(ok), nil
	case Gt:
		return compareOp(left, right, func(c int) bool { return c > 0 })
	case Ge:
		return compareOp(left, right, func(c int) bool { return c >= 0 })
	case Lt:
		return compareOp(left, right, func(c int) bool { return c < 0 })
	case Le:
		return compareOp(left, right, func(c int) bool { return c <= 0 })
	case Arrow:
		v, ok := left.Index(right)
		if !ok {
			return sql.Null, nil
		}
		return v, nil
	default:
		return nil, fmt.Errorf("expression: unknown binary operator %v", b.Op)
	}
}

func compareOp(left, right sql.Value, test func(int) bool) (sql.Value, error) {
	c, err := left.Compare(right)
	if err != nil {
		return nil, wrap(err)
	}
	return sql.Bool(test(c)), nil
}
