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
	"io"

	"github.com/Anexen/sqc/expression"
	"github.com/Anexen/sqc/sql"
)

// tableScanIter streams the rows the context has bound for one table,
// tagging each under Alias and applying the conjunction of push-down
// filters (spec §4.E TableScan).
type tableScanIter struct {
	alias   sql.TableReference
	filters []expression.Expr
	rows    []*sql.RowPart
	pos     int
}

// NewTableScan looks up the records bound to table and wraps each under
// alias, keeping only those matching every filter. A missing binding is a
// fatal error at scan construction time, not lazily on first Next,
// matching "a missing table is a fatal TableNotFound error at scan time"
// (spec §4.E).
func NewTableScan(ctx *sql.Context, table, alias sql.TableReference, filters []expression.Expr) (RowIter, error) {
	rows, err := ctx.ScanTable(table)
	if err != nil {
		return nil, err
	}
	return &tableScanIter{alias: alias, filters: filters, rows: rows}, nil
}

func (s *tableScanIter) Next(ctx *sql.Context) (*sql.Row, error) {
	for {
		if s.pos >= len(s.rows) {
			return nil, io.EOF
		}
		part := s.rows[s.pos]
		s.pos++

		row := sql.NewRowFrom(s.alias, part)
		matched, err := s.matches(ctx, row)
		if err != nil {
			return nil, err
		}
		if matched {
			return row, nil
		}
	}
}

func (s *tableScanIter) matches(ctx *sql.Context, row *sql.Row) (bool, error) {
	for _, f := range s.filters {
		v, err := f.Eval(ctx, row)
		if err != nil {
			return false, err
		}
		if !v.Truthy() {
			return false, nil
		}
	}
	return true, nil
}

func (s *tableScanIter) Close(ctx *sql.Context) error { return nil }

// emptyRelationIter yields zero rows, or exactly one row with a single
// empty part under its alias (sql.DefaultTable for the planner's empty
// FROM) (spec §4.E EmptyRelation).
type emptyRelationIter struct {
	alias    sql.TableReference
	produced bool
	yield    bool
}

// NewEmptyRelation builds an iterator that yields one empty row tagged
// under alias when yieldRow is true, else nothing.
func NewEmptyRelation(alias sql.TableReference, yieldRow bool) RowIter {
	return &emptyRelationIter{alias: alias, yield: yieldRow}
}

func (e *emptyRelationIter) Next(ctx *sql.Context) (*sql.Row, error) {
	if !e.yield || e.produced {
		return nil, io.EOF
	}
	e.produced = true
	return sql.NewRowFrom(e.alias, sql.NewRowPart()), nil
}

func (e *emptyRelationIter) Close(ctx *sql.Context) error { return nil }
