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

// Package planner lowers a parsed SELECT AST into the logical plan IR
// (spec §4.D). Apart from parser, which produces the AST, it is the only
// package that imports the external parser's AST types; everything
// downstream (plan, expression, rowexec) is free of them.
package planner

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/src-d/go-vitess.v0/vt/sqlparser"

	"github.com/Anexen/sqc/expression"
	"github.com/Anexen/sqc/plan"
	"github.com/Anexen/sqc/sql"
	"github.com/Anexen/sqc/sqlval"
)

// ErrPlan wraps any failure to lower a syntactically valid AST, e.g. an
// unsupported construct (spec §7 PlanError).
var ErrPlan = errors.NewKind("plan error: %s")

// Plan lowers sel into a logical plan (spec §4.D).
func Plan(sel *sqlparser.Select) (plan.Node, error) {
	node, err := planSelect(sel)
	if err != nil {
		return nil, err
	}

	if sel.Limit != nil {
		count, offset, err := lowerLimit(sel.Limit)
		if err != nil {
			return nil, err
		}
		node = plan.NewLimit(count, offset, node)
	}

	return node, nil
}

// planSelect builds FROM, then wraps with Filter/Sort/Projection in that
// order (spec §4.D point 2).
func planSelect(sel *sqlparser.Select) (plan.Node, error) {
	node, err := lowerFrom(sel.From)
	if err != nil {
		return nil, err
	}

	if sel.Where != nil {
		predicate, err := lowerExpr(sel.Where.Expr)
		if err != nil {
			return nil, err
		}
		node = plan.NewFilter(predicate, node)
	}

	if len(sel.OrderBy) > 0 {
		fields, err := lowerOrderBy(sel.OrderBy)
		if err != nil {
			return nil, err
		}
		node = plan.NewSort(fields, node)
	}

	items, err := lowerSelectExprs(sel.SelectExprs)
	if err != nil {
		return nil, err
	}
	return plan.NewProjection(items, node), nil
}

// lowerFrom builds the FROM clause (spec §4.D point 3-5): an empty FROM
// becomes EmptyRelation; multiple sibling tables (a cross join) are not
// supported; a single table factor recurses through joins.
func lowerFrom(from sqlparser.TableExprs) (plan.Node, error) {
	if len(from) == 0 || isDual(from) {
		return plan.NewEmptyRelation(sql.DefaultTable, true), nil
	}
	if len(from) > 1 {
		return nil, ErrPlan.New("cross join (multiple FROM tables) is not supported")
	}
	return lowerTableExpr(from[0])
}

// isDual reports whether from is the bare `dual` table the parser puts in
// place of a missing FROM clause.
func isDual(from sqlparser.TableExprs) bool {
	if len(from) != 1 {
		return false
	}
	t, ok := from[0].(*sqlparser.AliasedTableExpr)
	if !ok || !t.As.IsEmpty() {
		return false
	}
	name, ok := t.Expr.(sqlparser.TableName)
	return ok && name.Qualifier.IsEmpty() && strings.EqualFold(name.Name.String(), "dual")
}

func lowerTableExpr(te sqlparser.TableExpr) (plan.Node, error) {
	switch t := te.(type) {
	case *sqlparser.AliasedTableExpr:
		return lowerAliasedTableExpr(t)

	case *sqlparser.ParenTableExpr:
		if len(t.Exprs) != 1 {
			return nil, ErrPlan.New("cross join (multiple FROM tables) is not supported")
		}
		return lowerTableExpr(t.Exprs[0])

	case *sqlparser.JoinTableExpr:
		return lowerJoin(t)

	default:
		return nil, ErrPlan.New(fmt.Sprintf("unsupported FROM clause: %T", te))
	}
}

// lowerAliasedTableExpr handles a bare table, optionally aliased
// (spec §4.D point 4): `Table{name, alias?}` -> TableScan, wrapped in
// SubqueryAlias when an alias was given.
func lowerAliasedTableExpr(t *sqlparser.AliasedTableExpr) (plan.Node, error) {
	tableName, ok := t.Expr.(sqlparser.TableName)
	if !ok {
		return nil, ErrPlan.New(fmt.Sprintf("unsupported table expression: %T", t.Expr))
	}

	name := sql.TableReference(tableName.Name.String())
	alias := name
	if !t.As.IsEmpty() {
		alias = sql.TableReference(t.As.String())
	}

	scan := plan.NewTableScan(name, alias)
	if alias == name {
		return scan, nil
	}
	return plan.NewSubqueryAlias(alias, scan), nil
}

// lowerJoin handles `[INNER] JOIN ... ON ...` (spec §4.D point 5-6): the
// left side is planned first, the right side recursively, then the ON
// expression is split into its equijoin and residual-filter components.
func lowerJoin(t *sqlparser.JoinTableExpr) (plan.Node, error) {
	if strings.ToLower(t.Join) != sqlparser.JoinStr {
		return nil, ErrPlan.New(fmt.Sprintf("unsupported join type: %s (only INNER JOIN is supported)", t.Join))
	}

	left, err := lowerTableExpr(t.LeftExpr)
	if err != nil {
		return nil, err
	}
	right, err := lowerTableExpr(t.RightExpr)
	if err != nil {
		return nil, err
	}

	leftRefs, leftOK := tableRefsOf(left)
	rightRefs, rightOK := tableRefsOf(right)
	if !leftOK || !rightOK {
		return nil, ErrPlan.New("join side must expose a table reference")
	}

	cond := t.Condition.On
	if cond == nil {
		return nil, ErrPlan.New("join requires an ON condition")
	}

	on, filter, err := splitJoinCondition(cond, leftRefs, rightRefs)
	if err != nil {
		return nil, err
	}

	return plan.NewInnerJoin(left, right, on, filter), nil
}

// tableRefsOf implements get_table_ref (spec §4.D): it walks a plan branch
// bottom-up through the reference-preserving stages (scan, alias, filter,
// projection, sort, limit, join) to find the set of TableReferences it
// exposes. A bare scan or alias exposes exactly one; a Join (the left or
// right side of a multi-table join chain, spec §4.D point 5) exposes the
// union of both its sides, so a 3+-table chain still classifies correctly
// against the accumulated left. Projection and EmptyRelation expose none;
// callers only invoke this on branches where it is defined (both sides of
// a join, which are always scans, aliases or nested joins by construction
// above).
func tableRefsOf(node plan.Node) ([]sql.TableReference, bool) {
	switch n := node.(type) {
	case *plan.TableScan:
		return []sql.TableReference{n.Alias}, true
	case *plan.SubqueryAlias:
		return []sql.TableReference{n.Alias}, true
	case *plan.Filter:
		return tableRefsOf(n.Input)
	case *plan.Projection:
		return nil, false
	case *plan.Sort:
		return tableRefsOf(n.Input)
	case *plan.Limit:
		return tableRefsOf(n.Input)
	case *plan.Join:
		left, ok := tableRefsOf(n.Left)
		if !ok {
			return nil, false
		}
		right, ok := tableRefsOf(n.Right)
		if !ok {
			return nil, false
		}
		return append(append([]sql.TableReference(nil), left...), right...), true
	default:
		return nil, false
	}
}

// splitJoinCondition implements the equijoin split (spec §4.D point 6,
// §9): flatten AND, classify each conjunct by whether it is `a = b` with
// one side's columns entirely drawn from leftRefs and the other entirely
// from rightRefs (either orientation); anything else joins the filter
// residual, re-combined with AND. leftRefs spans every table already
// folded into a chained join's accumulated left side, not just one table.
func splitJoinCondition(cond sqlparser.Expr, leftRefs, rightRefs []sql.TableReference) ([]plan.EquiPair, expression.Expr, error) {
	conjuncts := flattenAnd(cond)

	var on []plan.EquiPair
	var residual expression.Expr

	for _, c := range conjuncts {
		if cmp, ok := c.(*sqlparser.ComparisonExpr); ok && cmp.Operator == sqlparser.EqualStr {
			leftExpr, err := lowerExpr(cmp.Left)
			if err != nil {
				return nil, nil, err
			}
			rightExpr, err := lowerExpr(cmp.Right)
			if err != nil {
				return nil, nil, err
			}

			if sideMatches(leftExpr, leftRefs) && sideMatches(rightExpr, rightRefs) {
				on = append(on, plan.EquiPair{Left: leftExpr, Right: rightExpr})
				continue
			}
			if sideMatches(leftExpr, rightRefs) && sideMatches(rightExpr, leftRefs) {
				on = append(on, plan.EquiPair{Left: rightExpr, Right: leftExpr})
				continue
			}
		}

		e, err := lowerExpr(c)
		if err != nil {
			return nil, nil, err
		}
		if residual == nil {
			residual = e
		} else {
			residual = expression.NewBinary(expression.And, residual, e)
		}
	}

	return on, residual, nil
}

// sideMatches reports whether every Column reachable from e is qualified
// by one of refs, or unqualified (in which case it cannot be ruled out and
// is conservatively accepted - the row-level resolver will error at
// runtime if it turns out ambiguous).
func sideMatches(e expression.Expr, refs []sql.TableReference) bool {
	switch v := e.(type) {
	case *expression.Column:
		return v.Relation == nil || containsRef(refs, *v.Relation)
	case *expression.Unary:
		return sideMatches(v.Expr, refs)
	case *expression.Binary:
		return sideMatches(v.Left, refs) && sideMatches(v.Right, refs)
	case *expression.ScalarFunction:
		for _, a := range v.Args {
			if !sideMatches(a, refs) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func containsRef(refs []sql.TableReference, ref sql.TableReference) bool {
	for _, r := range refs {
		if r == ref {
			return true
		}
	}
	return false
}

func flattenAnd(e sqlparser.Expr) []sqlparser.Expr {
	and, ok := e.(*sqlparser.AndExpr)
	if !ok {
		return []sqlparser.Expr{e}
	}
	return append(flattenAnd(and.Left), flattenAnd(and.Right)...)
}

// lowerOrderBy implements spec §4.D point 7: each OrderByExpr becomes
// (expr, asc, nulls_first) with asc defaulting true and nulls_first set
// to !asc (NULLs sort last ascending, first descending - NULL treated as
// greater than any non-null).
func lowerOrderBy(ob sqlparser.OrderBy) ([]plan.SortField, error) {
	fields := make([]plan.SortField, len(ob))
	for i, o := range ob {
		e, err := lowerExpr(o.Expr)
		if err != nil {
			return nil, err
		}
		desc := o.Direction == sqlparser.DescScr
		fields[i] = plan.SortField{
			Expr:       e,
			Descending: desc,
			NullsFirst: desc,
		}
	}
	return fields, nil
}

// lowerLimit lowers LIMIT/OFFSET to expressions, per spec §4.D point 1
// ("offset and limit are themselves expressions, constant-folded at
// execution time").
func lowerLimit(l *sqlparser.Limit) (count, offset expression.Expr, err error) {
	count, err = lowerExpr(l.Rowcount)
	if err != nil {
		return nil, nil, err
	}
	if l.Offset == nil {
		return count, nil, nil
	}
	offset, err = lowerExpr(l.Offset)
	if err != nil {
		return nil, nil, err
	}
	return count, offset, nil
}

// lowerSelectExprs implements spec §4.D point 8, preserving user order and
// allowing duplicate output names.
func lowerSelectExprs(exprs sqlparser.SelectExprs) ([]plan.ProjectionItem, error) {
	items := make([]plan.ProjectionItem, 0, len(exprs))
	for _, se := range exprs {
		switch e := se.(type) {
		case *sqlparser.StarExpr:
			if e.TableName.IsEmpty() {
				items = append(items, plan.ProjectionItem{Expr: expression.NewWildcard(), Name: "*"})
			} else {
				ref := sql.TableReference(e.TableName.Name.String())
				items = append(items, plan.ProjectionItem{
					Expr: expression.NewQualifiedWildcard(ref),
					Name: string(ref),
				})
			}

		case *sqlparser.AliasedExpr:
			expr, err := lowerExpr(e.Expr)
			if err != nil {
				return nil, err
			}
			name := e.As.String()
			if name == "" {
				if col, ok := e.Expr.(*sqlparser.ColName); ok {
					name = col.Name.String()
				} else {
					name = sqlparser.String(e.Expr)
				}
			}
			items = append(items, plan.ProjectionItem{Expr: expr, Name: name})

		default:
			return nil, ErrPlan.New(fmt.Sprintf("unsupported select item: %T", se))
		}
	}
	return items, nil
}

// lowerExpr implements spec §4.D point 9.
func lowerExpr(e sqlparser.Expr) (expression.Expr, error) {
	switch v := e.(type) {
	case *sqlparser.ParenExpr:
		return lowerExpr(v.Expr)

	case *sqlparser.ColName:
		if v.Qualifier.IsEmpty() {
			return expression.NewColumn(v.Name.String()), nil
		}
		ref := sql.TableReference(v.Qualifier.Name.String())
		return expression.NewQualifiedColumn(ref, v.Name.String()), nil

	case *sqlparser.SQLVal:
		return lowerLiteral(v)

	case sqlparser.BoolVal:
		return expression.NewLiteral(sql.Bool(bool(v))), nil

	case *sqlparser.NullVal:
		return expression.NewLiteral(sql.Null), nil

	case *sqlparser.AndExpr:
		left, err := lowerExpr(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := lowerExpr(v.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewBinary(expression.And, left, right), nil

	case *sqlparser.OrExpr:
		left, err := lowerExpr(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := lowerExpr(v.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewBinary(expression.Or, left, right), nil

	case *sqlparser.NotExpr:
		inner, err := lowerExpr(v.Expr)
		if err != nil {
			return nil, err
		}
		return expression.NewUnary(expression.Not, inner), nil

	case *sqlparser.ComparisonExpr:
		return lowerComparison(v)

	case *sqlparser.BinaryExpr:
		return lowerBinary(v)

	case *sqlparser.UnaryExpr:
		return lowerUnary(v)

	case *sqlparser.FuncExpr:
		return lowerFuncExpr(v)

	default:
		return nil, ErrPlan.New(fmt.Sprintf("unsupported expression: %T", e))
	}
}

func lowerLiteral(v *sqlparser.SQLVal) (expression.Expr, error) {
	switch v.Type {
	case sqlparser.StrVal:
		return expression.NewLiteral(literal(string(v.Val))), nil
	case sqlparser.IntVal:
		n, err := strconv.ParseInt(string(v.Val), 10, 64)
		if err != nil {
			return nil, ErrPlan.New(fmt.Sprintf("invalid integer literal %q: %s", v.Val, err))
		}
		return expression.NewLiteral(literal(n)), nil
	case sqlparser.FloatVal:
		f, err := strconv.ParseFloat(string(v.Val), 64)
		if err != nil {
			return nil, ErrPlan.New(fmt.Sprintf("invalid float literal %q: %s", v.Val, err))
		}
		return expression.NewLiteral(literal(f)), nil
	default:
		return nil, ErrPlan.New(fmt.Sprintf("unsupported literal kind %d", v.Type))
	}
}

func lowerComparison(v *sqlparser.ComparisonExpr) (expression.Expr, error) {
	left, err := lowerExpr(v.Left)
	if err != nil {
		return nil, err
	}
	right, err := lowerExpr(v.Right)
	if err != nil {
		return nil, err
	}

	var op expression.BinaryOp
	switch v.Operator {
	case sqlparser.EqualStr:
		op = expression.Eq
	case sqlparser.GreaterThanStr:
		op = expression.Gt
	case sqlparser.GreaterEqualStr:
		op = expression.Ge
	case sqlparser.LessThanStr:
		op = expression.Lt
	case sqlparser.LessEqualStr:
		op = expression.Le
	default:
		return nil, ErrPlan.New(fmt.Sprintf("unsupported comparison operator: %s", v.Operator))
	}
	return expression.NewBinary(op, left, right), nil
}

func lowerBinary(v *sqlparser.BinaryExpr) (expression.Expr, error) {
	left, err := lowerExpr(v.Left)
	if err != nil {
		return nil, err
	}
	right, err := lowerExpr(v.Right)
	if err != nil {
		return nil, err
	}

	var op expression.BinaryOp
	switch v.Operator {
	case sqlparser.PlusStr:
		op = expression.Add
	case sqlparser.MinusStr:
		op = expression.Sub
	case sqlparser.MultStr:
		op = expression.Mul
	case sqlparser.DivStr:
		op = expression.Div
	case sqlparser.IntDivStr:
		op = expression.IntDiv
	case sqlparser.ModStr:
		op = expression.Mod
	case sqlparser.JSONExtractOp:
		// `e -> i` / `e[i]`, both surfaced by the parser as this operator
		// (spec §4.D point 9: "Subscript{e, Index(i)} becomes Binary{e, ->, i}").
		op = expression.Arrow
	default:
		return nil, ErrPlan.New(fmt.Sprintf("unsupported binary operator: %s", v.Operator))
	}
	return expression.NewBinary(op, left, right), nil
}

func lowerUnary(v *sqlparser.UnaryExpr) (expression.Expr, error) {
	inner, err := lowerExpr(v.Expr)
	if err != nil {
		return nil, err
	}

	switch v.Operator {
	case sqlparser.UPlusStr:
		return expression.NewUnary(expression.Plus, inner), nil
	case sqlparser.UMinusStr:
		return expression.NewUnary(expression.Minus, inner), nil
	default:
		return nil, ErrPlan.New(fmt.Sprintf("unsupported unary operator: %s", v.Operator))
	}
}

// lowerFuncExpr handles `name(args...)` scalar function calls.
func lowerFuncExpr(v *sqlparser.FuncExpr) (expression.Expr, error) {
	args := make([]expression.Expr, 0, len(v.Exprs))
	for _, a := range v.Exprs {
		ae, ok := a.(*sqlparser.AliasedExpr)
		if !ok {
			return nil, ErrPlan.New(fmt.Sprintf("unsupported function argument: %T", a))
		}
		e, err := lowerExpr(ae.Expr)
		if err != nil {
			return nil, err
		}
		args = append(args, e)
	}
	return expression.NewScalarFunction(v.Name.String(), args), nil
}

// literal wraps a Go-native parsed literal as a sql.Value via the
// reference host value implementation, the same one the engine hands the
// caller's raw []map[string]any input through (spec §4.D point 9: "values
// translate to host literals").
func literal(v any) sql.Value {
	return sqlval.Wrap(v)
}
