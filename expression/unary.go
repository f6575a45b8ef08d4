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

// UnaryOp names the supported prefix operators (spec §3).
type UnaryOp int

const (
	Plus UnaryOp = iota
	Minus
	Not
)

func (op UnaryOp) String() string {
	switch op {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Not:
		return "NOT"
	default:
		return "?"
	}
}

// Unary applies a prefix operator to a single operand.
type Unary struct {
	Op   UnaryOp
	Expr Expr
}

// NewUnary builds op(expr).
func NewUnary(op UnaryOp, expr Expr) *Unary {
	return &Unary{Op: op, Expr: expr}
}

func (u *Unary) String() string {
	return fmt.Sprintf("%s %s", u.Op, u.Expr)
}

// Eval implements spec §4.B Unary rules: NULL propagates through +/-/NOT.
func (u *Unary) Eval(ctx *sql.Context, row *sql.Row) (sql.Value, error) {
	v, err := u.Expr.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if sql.IsNull(v) {
		return sql.Null, nil
	}

	switch u.Op {
	case Plus:
		r, err := v.Pos()
		return r, wrap(err)
	case Minus:
		r, err := v.Neg()
		return r, wrap(err)
	case Not:
		return sql.Bool(!v.Truthy()), nil
	default:
		return nil, fmt.Errorf("expression: unknown unary operator %v", u.Op)
	}
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return sql.ErrRuntimeError.New(err)
}
