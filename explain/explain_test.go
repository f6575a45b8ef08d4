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

package explain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Anexen/sqc/expression"
	"github.com/Anexen/sqc/plan"
	"github.com/Anexen/sqc/sql"
	"github.com/Anexen/sqc/sqlval"
)

func TestExplainIndentsChildrenOneLevel(t *testing.T) {
	scan := plan.NewTableScan("dataset", "dataset")
	filter := plan.NewFilter(
		expression.NewBinary(expression.Eq, expression.NewColumn("cid"), expression.NewLiteral(sqlval.Wrap(int64(20)))),
		scan,
	)
	proj := plan.NewProjection([]plan.ProjectionItem{
		{Expr: expression.NewColumn("id"), Name: "ID"},
	}, filter)

	out := Explain(proj)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "Projection:"))
	require.True(t, strings.HasPrefix(lines[1], "  Filter:"))
	require.True(t, strings.HasPrefix(lines[2], "    TableScan:"))
}

func TestExplainJoinShowsEquiPairsAndFilter(t *testing.T) {
	left := plan.NewTableScan("l", "l")
	right := plan.NewTableScan("r", "r")
	join := plan.NewInnerJoin(left, right,
		[]plan.EquiPair{{
			Left:  expression.NewQualifiedColumn("l", "id"),
			Right: expression.NewQualifiedColumn("r", "id"),
		}},
		expression.NewBinary(expression.Gt, expression.NewQualifiedColumn("l", "v"), expression.NewLiteral(sqlval.Wrap(int64(10)))),
	)

	out := Explain(join)
	require.Contains(t, out, "Inner Join: [l.id = r.id] filter:")
	require.Contains(t, out, "l.v > 10")
}

func TestExplainSortShowsDirectionAndNulls(t *testing.T) {
	scan := plan.NewTableScan(sql.DefaultTable, sql.DefaultTable)
	sort := plan.NewSort([]plan.SortField{
		{Expr: expression.NewColumn("comments"), Descending: true, NullsFirst: true},
		{Expr: expression.NewColumn("created_at"), Descending: false, NullsFirst: false},
	}, scan)

	out := Explain(sort)
	require.Contains(t, out, "comments DESC NULLS FIRST")
	require.Contains(t, out, "created_at ASC NULLS LAST")
}

func TestExplainLimitWithAndWithoutOffset(t *testing.T) {
	scan := plan.NewTableScan(sql.DefaultTable, sql.DefaultTable)
	withOffset := plan.NewLimit(
		expression.NewLiteral(sqlval.Wrap(int64(10))),
		expression.NewLiteral(sqlval.Wrap(int64(5))),
		scan,
	)
	require.Contains(t, Explain(withOffset), "Limit: 10, Offset: 5")

	withoutOffset := plan.NewLimit(expression.NewLiteral(sqlval.Wrap(int64(10))), nil, scan)
	require.Contains(t, Explain(withoutOffset), "Limit: 10, Offset: ")
}
