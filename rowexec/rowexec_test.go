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

package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Anexen/sqc/expression"
	"github.com/Anexen/sqc/plan"
	"github.com/Anexen/sqc/sql"
	"github.com/Anexen/sqc/sqlval"
)

func bindRows(ctx *sql.Context, ref sql.TableReference, records []map[string]any) {
	parts := make([]*sql.RowPart, len(records))
	for i, rec := range records {
		part := sql.NewRowPart()
		for k, v := range rec {
			part.Set(k, sqlval.Wrap(v))
		}
		parts[i] = part
	}
	ctx.BindTable(ref, parts)
}

func collectValues(t *testing.T, ctx *sql.Context, iter RowIter, col string) []any {
	rows, err := Collect(ctx, iter)
	require.NoError(t, err)

	out := make([]any, len(rows))
	for i, row := range rows {
		part, ok := row.Part(sql.DefaultTable)
		require.True(t, ok)
		v, ok := part.Get(col)
		require.True(t, ok)
		out[i] = v.Unwrap()
	}
	return out
}

func TestTableScanAndFilter(t *testing.T) {
	ctx := sql.NewEmptyContext()
	bindRows(ctx, "dataset", []map[string]any{
		{"id": int64(1), "cid": int64(10), "s": int64(10)},
		{"id": int64(2), "cid": int64(10), "s": int64(20)},
		{"id": int64(3), "cid": int64(20), "s": int64(30)},
	})

	scan := plan.NewTableScan("dataset", "dataset")
	filter := plan.NewFilter(
		expression.NewBinary(expression.Eq, expression.NewColumn("cid"), expression.NewLiteral(sqlval.Wrap(int64(20)))),
		scan,
	)
	proj := plan.NewProjection([]plan.ProjectionItem{
		{Expr: expression.NewColumn("id"), Name: "ID"},
		{Expr: expression.NewColumn("s"), Name: "Spend"},
	}, filter)

	iter, err := Build(ctx, proj)
	require.NoError(t, err)

	rows, err := Collect(ctx, iter)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	part, _ := rows[0].Part(sql.DefaultTable)
	id, _ := part.Get("ID")
	spend, _ := part.Get("Spend")
	require.Equal(t, int64(3), id.Unwrap())
	require.Equal(t, int64(30), spend.Unwrap())
}

func TestLimitOffset(t *testing.T) {
	ctx := sql.NewEmptyContext()
	bindRows(ctx, sql.DefaultTable, []map[string]any{
		{"n": int64(1)}, {"n": int64(2)}, {"n": int64(3)}, {"n": int64(4)},
	})

	scan := plan.NewTableScan(sql.DefaultTable, sql.DefaultTable)
	proj := plan.NewProjection([]plan.ProjectionItem{{Expr: expression.NewColumn("n"), Name: "n"}}, scan)
	limit := plan.NewLimit(
		expression.NewLiteral(sqlval.Wrap(int64(2))),
		expression.NewLiteral(sqlval.Wrap(int64(1))),
		proj,
	)

	iter, err := Build(ctx, limit)
	require.NoError(t, err)

	values := collectValues(t, ctx, iter, "n")
	require.Equal(t, []any{int64(2), int64(3)}, values)
}

func TestSortNullOrdering(t *testing.T) {
	ctx := sql.NewEmptyContext()
	bindRows(ctx, sql.DefaultTable, []map[string]any{
		{"n": int64(3)},
		{"n": nil},
		{"n": int64(1)},
	})

	scan := plan.NewTableScan(sql.DefaultTable, sql.DefaultTable)
	proj := plan.NewProjection([]plan.ProjectionItem{{Expr: expression.NewColumn("n"), Name: "n"}}, scan)
	sort := plan.NewSort([]plan.SortField{
		{Expr: expression.NewColumn("n"), Descending: false, NullsFirst: false},
	}, proj)

	iter, err := Build(ctx, sort)
	require.NoError(t, err)

	values := collectValues(t, ctx, iter, "n")
	require.Equal(t, []any{int64(1), int64(3), nil}, values)
}

func TestInnerJoinWithResidualFilter(t *testing.T) {
	ctx := sql.NewEmptyContext()
	bindRows(ctx, "l", []map[string]any{
		{"id": int64(1), "v": int64(100)},
		{"id": int64(2), "v": int64(5)},
	})
	bindRows(ctx, "r", []map[string]any{
		{"id": int64(1), "w": int64(1)},
		{"id": int64(2), "w": int64(2)},
	})

	left := plan.NewTableScan("l", "l")
	right := plan.NewTableScan("r", "r")

	join := plan.NewInnerJoin(left, right,
		[]plan.EquiPair{{
			Left:  expression.NewQualifiedColumn("l", "id"),
			Right: expression.NewQualifiedColumn("r", "id"),
		}},
		expression.NewBinary(expression.Gt, expression.NewQualifiedColumn("l", "v"), expression.NewLiteral(sqlval.Wrap(int64(10)))),
	)
	proj := plan.NewProjection([]plan.ProjectionItem{
		{Expr: expression.NewQualifiedColumn("l", "id"), Name: "id"},
	}, join)

	iter, err := Build(ctx, proj)
	require.NoError(t, err)

	values := collectValues(t, ctx, iter, "id")
	require.Equal(t, []any{int64(1)}, values)
}

func TestThreeTableJoinChain(t *testing.T) {
	ctx := sql.NewEmptyContext()
	bindRows(ctx, "ev", []map[string]any{
		{"pr": int64(1)},
		{"pr": int64(2)},
	})
	bindRows(ctx, "pr", []map[string]any{
		{"id": int64(1), "user": int64(10)},
		{"id": int64(2), "user": int64(20)},
	})
	bindRows(ctx, "u", []map[string]any{
		{"id": int64(10), "name": "alice"},
		{"id": int64(20), "name": "bob"},
	})

	evToPr := plan.NewInnerJoin(
		plan.NewTableScan("ev", "ev"),
		plan.NewTableScan("pr", "pr"),
		[]plan.EquiPair{{
			Left:  expression.NewQualifiedColumn("ev", "pr"),
			Right: expression.NewQualifiedColumn("pr", "id"),
		}},
		nil,
	)
	chain := plan.NewInnerJoin(
		evToPr,
		plan.NewTableScan("u", "u"),
		[]plan.EquiPair{{
			Left:  expression.NewQualifiedColumn("pr", "user"),
			Right: expression.NewQualifiedColumn("u", "id"),
		}},
		nil,
	)
	proj := plan.NewProjection([]plan.ProjectionItem{
		{Expr: expression.NewQualifiedColumn("u", "name"), Name: "name"},
	}, chain)

	iter, err := Build(ctx, proj)
	require.NoError(t, err)

	values := collectValues(t, ctx, iter, "name")
	require.ElementsMatch(t, []any{"alice", "bob"}, values)
}

func TestEmptyRelationProjectsConstant(t *testing.T) {
	ctx := sql.NewEmptyContext()
	empty := plan.NewEmptyRelation(sql.DefaultTable, true)
	proj := plan.NewProjection([]plan.ProjectionItem{
		{Expr: expression.NewLiteral(sqlval.Wrap(int64(10))), Name: "a"},
	}, empty)

	iter, err := Build(ctx, proj)
	require.NoError(t, err)

	values := collectValues(t, ctx, iter, "a")
	require.Equal(t, []any{int64(10)}, values)
}
