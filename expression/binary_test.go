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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Anexen/sqc/sql"
	"github.com/Anexen/sqc/sqlval"
)

func lit(v any) Expr { return NewLiteral(sqlval.Wrap(v)) }

func TestBinaryArithmetic(t *testing.T) {
	ctx := sql.NewEmptyContext()
	row := sql.NewRow()

	b := NewBinary(Add, NewBinary(Mul, NewBinary(Add, lit(int64(3)), lit(int64(4))), lit(int64(3))), lit(int64(-1)))
	b = NewBinary(Div, b, lit(int64(2)))

	v, err := b.Eval(ctx, row)
	require.NoError(t, err)
	require.Equal(t, float64(10), v.Unwrap())
}

func TestBinaryNullPropagation(t *testing.T) {
	ctx := sql.NewEmptyContext()
	row := sql.NewRow()

	for _, op := range []BinaryOp{Add, Sub, Mul, Div, IntDiv, Mod, Eq, Gt, Ge, Lt, Le} {
		b := NewBinary(op, NewLiteral(sql.Null), lit(int64(1)))
		v, err := b.Eval(ctx, row)
		require.NoError(t, err)
		require.True(t, v.IsNull(), "op %v should propagate NULL", op)
	}
}

func TestBinaryAndOrUseTruthiness(t *testing.T) {
	ctx := sql.NewEmptyContext()
	row := sql.NewRow()

	andExpr := NewBinary(And, NewLiteral(sql.Null), lit(false))
	v, err := andExpr.Eval(ctx, row)
	require.NoError(t, err)
	require.False(t, v.Truthy())

	orExpr := NewBinary(Or, NewLiteral(sql.Null), lit(true))
	v, err = orExpr.Eval(ctx, row)
	require.NoError(t, err)
	require.True(t, v.Truthy())
}

func TestBinaryArrowMissingKeyIsNull(t *testing.T) {
	ctx := sql.NewEmptyContext()
	row := sql.NewRow()

	b := NewBinary(Arrow, lit(map[string]any{"x": int64(1)}), lit("missing"))
	v, err := b.Eval(ctx, row)
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestBinaryArrowHit(t *testing.T) {
	ctx := sql.NewEmptyContext()
	row := sql.NewRow()

	b := NewBinary(Arrow, lit(map[string]any{"x": int64(42)}), lit("x"))
	v, err := b.Eval(ctx, row)
	require.NoError(t, err)
	require.Equal(t, int64(42), v.Unwrap())
}

func TestBinaryComparison(t *testing.T) {
	ctx := sql.NewEmptyContext()
	row := sql.NewRow()

	gt := NewBinary(Gt, lit(int64(5)), lit(int64(3)))
	v, err := gt.Eval(ctx, row)
	require.NoError(t, err)
	require.True(t, v.Truthy())

	eq := NewBinary(Eq, lit("a"), lit("a"))
	v, err = eq.Eval(ctx, row)
	require.NoError(t, err)
	require.True(t, v.Truthy())
}
