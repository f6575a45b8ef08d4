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
)

func TestLengthOfString(t *testing.T) {
	fn := NewScalarFunction("length", []Expr{lit("hello")})
	v, err := fn.Eval(sql.NewEmptyContext(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, float64(5), v.Unwrap())
}

func TestLengthPropagatesNull(t *testing.T) {
	fn := NewScalarFunction("length", []Expr{NewLiteral(sql.Null)})
	v, err := fn.Eval(sql.NewEmptyContext(), sql.NewRow())
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestRoundToPrecision(t *testing.T) {
	fn := NewScalarFunction("round", []Expr{lit(float64(3.14159)), lit(int64(2))})
	v, err := fn.Eval(sql.NewEmptyContext(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, float64(3.14), v.Unwrap())
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	fn := NewScalarFunction("round", []Expr{lit(float64(2.5)), lit(int64(0))})
	v, err := fn.Eval(sql.NewEmptyContext(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, float64(3), v.Unwrap())
}

func TestUnknownFunctionErrors(t *testing.T) {
	fn := NewScalarFunction("not_a_function", nil)
	_, err := fn.Eval(sql.NewEmptyContext(), sql.NewRow())
	require.Error(t, err)
}
