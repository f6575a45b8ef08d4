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

// Package expression implements the scalar expression tree and evaluator
// (spec §3 "Expression tree", §4.B). Expr is a small set of variants, each
// implementing its own Eval method.
package expression

import (
	"fmt"

	"github.com/Anexen/sqc/sql"
)

// Expr is any node in the expression tree. String renders the expression
// the way the planner's default projection output name and Explain expect
// (spec §4.D point 8, §4.F).
type Expr interface {
	fmt.Stringer
	Eval(ctx *sql.Context, row *sql.Row) (sql.Value, error)
}

// Column references a value by name, optionally qualified by a table
// reference (spec §4.B).
type Column struct {
	Name     string
	Relation *sql.TableReference
}

// NewColumn builds an unqualified column reference.
func NewColumn(name string) *Column { return &Column{Name: name} }

// NewQualifiedColumn builds a column reference qualified by relation.
func NewQualifiedColumn(relation sql.TableReference, name string) *Column {
	return &Column{Name: name, Relation: &relation}
}

func (c *Column) String() string {
	if c.Relation != nil {
		return fmt.Sprintf("%s.%s", *c.Relation, c.Name)
	}
	return c.Name
}

// Eval implements the column-resolution rule in spec §4.B: a qualified
// column looks up its named table directly (error if missing); an
// unqualified column scans every part of the row for one containing the
// name, erroring on zero or on more than one match.
func (c *Column) Eval(ctx *sql.Context, row *sql.Row) (sql.Value, error) {
	var part *sql.RowPart

	if c.Relation != nil {
		p, ok := row.Part(*c.Relation)
		if !ok {
			return nil, sql.ErrTableNotFound.New(*c.Relation)
		}
		part = p
	} else {
		var found *sql.RowPart
		matches := 0
		for _, ref := range row.Refs() {
			p, _ := row.Part(ref)
			if _, ok := p.Get(c.Name); ok {
				found = p
				matches++
				if matches > 1 {
					return nil, sql.ErrAmbiguousColumn.New(c.Name)
				}
			}
		}
		if matches == 0 {
			return nil, sql.ErrColumnNotFound.New(c.Name)
		}
		part = found
	}

	v, ok := part.Get(c.Name)
	if !ok {
		// Missing *value* within a chosen part is NULL, not an error
		// (spec §4.B).
		return sql.Null, nil
	}
	return v, nil
}

// Literal is a constant scalar, including NULL (spec §3).
type Literal struct {
	Value sql.Value
}

// NewLiteral wraps v (may be sql.Null) as a constant expression.
func NewLiteral(v sql.Value) *Literal {
	if v == nil {
		v = sql.Null
	}
	return &Literal{Value: v}
}

func (l *Literal) String() string {
	if l.Value.IsNull() {
		return "NULL"
	}
	return l.Value.String()
}

func (l *Literal) Eval(_ *sql.Context, _ *sql.Row) (sql.Value, error) {
	return l.Value, nil
}

// Alias renames an expression's projected output (spec §3 `Alias{expr,
// name}`); it evaluates exactly like its inner expression.
type Alias struct {
	Expr Expr
	Name string
}

// NewAlias builds expr AS name.
func NewAlias(expr Expr, name string) *Alias {
	return &Alias{Expr: expr, Name: name}
}

func (a *Alias) String() string {
	return fmt.Sprintf("%s AS %s", a.Expr, a.Name)
}

func (a *Alias) Eval(ctx *sql.Context, row *sql.Row) (sql.Value, error) {
	return a.Expr.Eval(ctx, row)
}

// Wildcard expands to all columns of one table (or of every table, when
// Table is nil). Only meaningful inside Projection (spec §4.B, §4.E);
// Eval is never called on it directly.
type Wildcard struct {
	Table *sql.TableReference
}

// NewWildcard builds an unqualified `*`.
func NewWildcard() *Wildcard { return &Wildcard{} }

// NewQualifiedWildcard builds a `table.*`.
func NewQualifiedWildcard(table sql.TableReference) *Wildcard {
	return &Wildcard{Table: &table}
}

func (w *Wildcard) String() string {
	if w.Table != nil {
		return fmt.Sprintf("%s.*", *w.Table)
	}
	return "*"
}

func (w *Wildcard) Eval(_ *sql.Context, _ *sql.Row) (sql.Value, error) {
	return nil, fmt.Errorf("expression: Wildcard cannot be evaluated directly; Projection must expand it")
}
