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

// Package plan defines the logical plan IR (spec §3 "Logical plan", §4.C):
// TableScan, EmptyRelation, SubqueryAlias, Filter, Projection, Sort, Limit
// and Join. Every node exposes Children() so Explain (and, later, any
// optimizer pass) can walk the tree without a type switch per concern.
package plan

import (
	"fmt"

	"github.com/Anexen/sqc/expression"
	"github.com/Anexen/sqc/sql"
)

// Node is one variant of the logical plan sum type.
type Node interface {
	fmt.Stringer
	// Children returns this node's direct plan inputs, in evaluation
	// order. Leaves (TableScan, EmptyRelation) return nil.
	Children() []Node
}

// TableScan reads every row of one host-supplied table under a table
// reference used to tag the rows it produces (spec §4.A, §4.C). Filters
// are predicates pushed down into the scan itself rather than left for a
// downstream Filter node.
type TableScan struct {
	Table   sql.TableReference
	Alias   sql.TableReference
	Filters []expression.Expr
}

// NewTableScan builds a scan of table, tagging output rows with alias
// (usually equal to table, distinct when the table was given `AS`).
func NewTableScan(table, alias sql.TableReference, filters ...expression.Expr) *TableScan {
	return &TableScan{Table: table, Alias: alias, Filters: filters}
}

func (t *TableScan) String() string {
	if t.Table != t.Alias {
		return fmt.Sprintf("TableScan(%s AS %s)", t.Table, t.Alias)
	}
	return fmt.Sprintf("TableScan(%s)", t.Table)
}

func (t *TableScan) Children() []Node { return nil }

// EmptyRelation yields either zero rows or exactly one empty row,
// depending on ProduceOneRow (spec §3 `EmptyRelation{produce_one_row}`).
// It still carries an output table reference so it can stand in for a scan
// without widening the two-level row shape downstream. The planner only
// ever builds this with ProduceOneRow=true, for an empty FROM clause
// (spec §4.D point 3); the false case exists because the IR is a general
// sum type, not because any lowering rule reaches it.
type EmptyRelation struct {
	Alias         sql.TableReference
	ProduceOneRow bool
}

// NewEmptyRelation builds an empty source tagged with alias, yielding one
// empty row when produceOneRow is true.
func NewEmptyRelation(alias sql.TableReference, produceOneRow bool) *EmptyRelation {
	return &EmptyRelation{Alias: alias, ProduceOneRow: produceOneRow}
}

func (e *EmptyRelation) String() string    { return fmt.Sprintf("EmptyRelation(%s)", e.Alias) }
func (e *EmptyRelation) Children() []Node { return nil }

// SubqueryAlias renames the single table reference produced by its input
// to Alias, so a derived table can be referenced, filtered and joined like
// any base table (spec §4.C).
type SubqueryAlias struct {
	Alias sql.TableReference
	Input Node
}

// NewSubqueryAlias builds `(input) AS alias`.
func NewSubqueryAlias(alias sql.TableReference, input Node) *SubqueryAlias {
	return &SubqueryAlias{Alias: alias, Input: input}
}

func (s *SubqueryAlias) String() string {
	return fmt.Sprintf("SubqueryAlias(%s)", s.Alias)
}

func (s *SubqueryAlias) Children() []Node { return []Node{s.Input} }

// Filter keeps only rows for which Predicate is truthy (spec §4.C); NULL
// and false are both treated as non-matching by the executor.
type Filter struct {
	Predicate expression.Expr
	Input     Node
}

// NewFilter builds a filter of input by predicate.
func NewFilter(predicate expression.Expr, input Node) *Filter {
	return &Filter{Predicate: predicate, Input: input}
}

func (f *Filter) String() string {
	return fmt.Sprintf("Filter(%s)", f.Predicate)
}

func (f *Filter) Children() []Node { return []Node{f.Input} }

// ProjectionItem is one output column: an expression and the name it is
// exposed under (spec §4.D point 8 governs the default name when no AS is
// given).
type ProjectionItem struct {
	Expr expression.Expr
	Name string
}

// Projection evaluates each Items entry against the input row and emits a
// single-table-reference output row. A Wildcard entry (table.* or *) is
// kept as an item by the planner (see planner.lowerSelectExprs) and is
// expanded by the executor against each input row's columns.
type Projection struct {
	Items []ProjectionItem
	Input Node
}

// NewProjection builds a projection of input.
func NewProjection(items []ProjectionItem, input Node) *Projection {
	return &Projection{Items: items, Input: input}
}

func (p *Projection) String() string {
	names := make([]string, len(p.Items))
	for i, it := range p.Items {
		names[i] = it.Name
	}
	return fmt.Sprintf("Projection(%v)", names)
}

func (p *Projection) Children() []Node { return []Node{p.Input} }

// SortField pairs a sort key expression with direction and NULL placement
// (spec §9 Open Question, resolved: NULL ordering is explicit, not
// incidental to the comparator).
type SortField struct {
	Expr       expression.Expr
	Descending bool
	NullsFirst bool
}

// Sort totally (materializing) orders Input by Fields, applied in order
// (spec §4.C).
type Sort struct {
	Fields []SortField
	Input  Node
}

// NewSort builds a sort of input by fields, most significant first.
func NewSort(fields []SortField, input Node) *Sort {
	return &Sort{Fields: fields, Input: input}
}

func (s *Sort) String() string {
	return fmt.Sprintf("Sort(%d fields)", len(s.Fields))
}

func (s *Sort) Children() []Node { return []Node{s.Input} }

// Limit caps the number of rows produced by Input, after first discarding
// Offset of them. Count and Offset are themselves expressions (spec §4.D
// point 1) - constant-folded against an empty row when execution begins,
// not at plan-build time, so a query that never runs never pays for it.
// Offset is nil when no OFFSET clause was given (treated as 0).
type Limit struct {
	Count  expression.Expr
	Offset expression.Expr
	Input  Node
}

// NewLimit builds input skipping offset rows (nil for none), capped at
// count.
func NewLimit(count, offset expression.Expr, input Node) *Limit {
	return &Limit{Count: count, Offset: offset, Input: input}
}

func (l *Limit) String() string {
	if l.Offset != nil {
		return fmt.Sprintf("Limit(%s, offset=%s)", l.Count, l.Offset)
	}
	return fmt.Sprintf("Limit(%s)", l.Count)
}

func (l *Limit) Children() []Node { return []Node{l.Input} }

// EquiPair is one `left_expr = right_expr` conjunct split out of a join
// condition at planning time so the executor can probe a hash table
// instead of rescanning the right side per left row (spec §4.C, §7).
type EquiPair struct {
	Left  expression.Expr
	Right expression.Expr
}

// Join is an inner join of Left and Right. On is the equijoin component
// used to build and probe the hash table; Filter is whatever residual,
// non-equi predicate remains (possibly nil) and must be re-checked against
// each merged candidate row after the hash probe (spec §9 Open Question,
// resolved: implement the join filter; do not skip it as the original
// does).
type Join struct {
	Left   Node
	Right  Node
	On     []EquiPair
	Filter expression.Expr
}

// NewInnerJoin builds an inner join of left and right keyed by on, with an
// optional residual filter.
func NewInnerJoin(left, right Node, on []EquiPair, filter expression.Expr) *Join {
	return &Join{Left: left, Right: right, On: on, Filter: filter}
}

func (j *Join) String() string {
	return fmt.Sprintf("InnerJoin(%d keys, filter=%v)", len(j.On), j.Filter != nil)
}

func (j *Join) Children() []Node { return []Node{j.Left, j.Right} }
