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

package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Anexen/sqc/explain"
	"github.com/Anexen/sqc/parser"
	"github.com/Anexen/sqc/plan"
)

func mustPlan(t *testing.T, sql string) plan.Node {
	t.Helper()
	sel, err := parser.Parse(sql)
	require.NoError(t, err)
	node, err := Plan(sel)
	require.NoError(t, err)
	return node
}

func TestPlanEmptyFromBecomesEmptyRelation(t *testing.T) {
	node := mustPlan(t, `SELECT 1 AS one`)
	proj, ok := node.(*plan.Projection)
	require.True(t, ok)
	_, ok = proj.Input.(*plan.EmptyRelation)
	require.True(t, ok)
}

func TestPlanWhereBecomesFilterOverScan(t *testing.T) {
	node := mustPlan(t, `SELECT id FROM dataset WHERE cid = 20`)
	proj := node.(*plan.Projection)
	filter, ok := proj.Input.(*plan.Filter)
	require.True(t, ok)
	_, ok = filter.Input.(*plan.TableScan)
	require.True(t, ok)
}

func TestPlanAliasedTableWrapsInSubqueryAlias(t *testing.T) {
	node := mustPlan(t, `SELECT t.a FROM data AS t`)
	proj := node.(*plan.Projection)
	alias, ok := proj.Input.(*plan.SubqueryAlias)
	require.True(t, ok)
	require.EqualValues(t, "t", alias.Alias)
}

func TestPlanJoinSplitsEquiFromResidual(t *testing.T) {
	node := mustPlan(t, `SELECT l.id FROM l JOIN r ON l.id = r.id AND l.v > 10`)
	proj := node.(*plan.Projection)
	join, ok := proj.Input.(*plan.Join)
	require.True(t, ok)
	require.Len(t, join.On, 1)
	require.NotNil(t, join.Filter)
}

func TestPlanJoinEitherOrientationOfEquiPair(t *testing.T) {
	node := mustPlan(t, `SELECT l.id FROM l JOIN r ON r.id = l.id`)
	proj := node.(*plan.Projection)
	join := proj.Input.(*plan.Join)
	require.Len(t, join.On, 1)
	require.Nil(t, join.Filter)
}

func TestPlanThreeTableJoinChainSplitsEachEquiPair(t *testing.T) {
	node := mustPlan(t, `SELECT u.name FROM ev JOIN pr ON ev.pr = pr.id JOIN u ON u.id = pr.user`)
	proj := node.(*plan.Projection)
	outer, ok := proj.Input.(*plan.Join)
	require.True(t, ok)
	require.Len(t, outer.On, 1)
	require.Nil(t, outer.Filter)

	inner, ok := outer.Left.(*plan.Join)
	require.True(t, ok)
	require.Len(t, inner.On, 1)
	require.Nil(t, inner.Filter)

	_, ok = outer.Right.(*plan.TableScan)
	require.True(t, ok)
}

func TestPlanOrderByDescSetsNullsFirst(t *testing.T) {
	node := mustPlan(t, `SELECT id FROM t ORDER BY comments DESC, created_at`)
	proj := node.(*plan.Projection)
	sort := proj.Input.(*plan.Sort)
	require.Len(t, sort.Fields, 2)
	require.True(t, sort.Fields[0].Descending)
	require.True(t, sort.Fields[0].NullsFirst)
	require.False(t, sort.Fields[1].Descending)
	require.False(t, sort.Fields[1].NullsFirst)
}

func TestPlanLimitOffsetAreExpressions(t *testing.T) {
	node := mustPlan(t, `SELECT id FROM t LIMIT 10 OFFSET 5`)
	limit, ok := node.(*plan.Limit)
	require.True(t, ok)
	require.NotNil(t, limit.Count)
	require.NotNil(t, limit.Offset)
}

func TestPlanWildcardPreservesTableQualifier(t *testing.T) {
	node := mustPlan(t, `SELECT t.* FROM data AS t`)
	proj := node.(*plan.Projection)
	require.Len(t, proj.Items, 1)
	require.Equal(t, "t.*", proj.Items[0].Expr.String())
}

func TestExplainOfPlannedQueryIsWellFormed(t *testing.T) {
	node := mustPlan(t, `SELECT id FROM dataset WHERE cid = 20 ORDER BY id LIMIT 1`)
	out := explain.Explain(node)
	require.Contains(t, out, "Limit:")
	require.Contains(t, out, "Sort:")
	require.Contains(t, out, "Filter:")
	require.Contains(t, out, "TableScan: dataset")
}

func TestPlanCrossJoinUnsupported(t *testing.T) {
	sel, err := parser.Parse(`SELECT 1 FROM a, b`)
	require.NoError(t, err)
	_, err = Plan(sel)
	require.True(t, ErrPlan.Is(err))
}
