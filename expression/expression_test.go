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

func rowFrom(ref sql.TableReference, kv map[string]any) *sql.Row {
	part := sql.NewRowPart()
	for k, v := range kv {
		part.Set(k, sqlval.Wrap(v))
	}
	return sql.NewRowFrom(ref, part)
}

func TestColumnQualifiedLookup(t *testing.T) {
	row := rowFrom(sql.TableReference("t"), map[string]any{"a": int64(1)})

	col := NewQualifiedColumn("t", "a")
	v, err := col.Eval(sql.NewEmptyContext(), row)
	require.NoError(t, err)
	require.Equal(t, int64(1), v.Unwrap())
}

func TestColumnQualifiedMissingTable(t *testing.T) {
	row := rowFrom(sql.TableReference("t"), map[string]any{"a": int64(1)})

	col := NewQualifiedColumn("other", "a")
	_, err := col.Eval(sql.NewEmptyContext(), row)
	require.True(t, sql.ErrTableNotFound.Is(err))
}

func TestColumnUnqualifiedAmbiguous(t *testing.T) {
	row := sql.NewRow()
	row.Set("t1", mustPart(map[string]any{"a": int64(1)}))
	row.Set("t2", mustPart(map[string]any{"a": int64(2)}))

	col := NewColumn("a")
	_, err := col.Eval(sql.NewEmptyContext(), row)
	require.True(t, sql.ErrAmbiguousColumn.Is(err))
}

func TestColumnUnqualifiedNotFound(t *testing.T) {
	row := rowFrom(sql.DefaultTable, map[string]any{"a": int64(1)})

	col := NewColumn("missing")
	_, err := col.Eval(sql.NewEmptyContext(), row)
	require.True(t, sql.ErrColumnNotFound.Is(err))
}

func TestColumnMissingValueIsNullNotError(t *testing.T) {
	row := rowFrom(sql.TableReference("t"), map[string]any{"a": int64(1)})
	col := NewQualifiedColumn("t", "b")
	v, err := col.Eval(sql.NewEmptyContext(), row)
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestLiteralNullDefault(t *testing.T) {
	lit := NewLiteral(nil)
	require.Equal(t, "NULL", lit.String())
}

func TestUnaryNullPropagation(t *testing.T) {
	u := NewUnary(Minus, NewLiteral(sql.Null))
	v, err := u.Eval(sql.NewEmptyContext(), sql.NewRow())
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestUnaryNot(t *testing.T) {
	u := NewUnary(Not, NewLiteral(sqlval.Wrap(false)))
	v, err := u.Eval(sql.NewEmptyContext(), sql.NewRow())
	require.NoError(t, err)
	require.True(t, v.Truthy())
}

func mustPart(kv map[string]any) *sql.RowPart {
	part := sql.NewRowPart()
	for k, v := range kv {
		part.Set(k, sqlval.Wrap(v))
	}
	return part
}
