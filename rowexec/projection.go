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
	"github.com/Anexen/sqc/expression"
	"github.com/Anexen/sqc/plan"
	"github.com/Anexen/sqc/sql"
)

// projectionIter evaluates each item against the input row and emits a
// single-part row keyed under sql.DefaultTable, in user-written order
// (spec §4.E Projection). Wildcard items are expanded here since they have
// no meaningful Eval of their own.
type projectionIter struct {
	items []plan.ProjectionItem
	input RowIter
}

// NewProjection wraps input, projecting items.
func NewProjection(items []plan.ProjectionItem, input RowIter) RowIter {
	return &projectionIter{items: items, input: input}
}

func (p *projectionIter) Next(ctx *sql.Context) (*sql.Row, error) {
	row, err := p.input.Next(ctx)
	if err != nil {
		return nil, err
	}

	out := sql.NewRowPart()
	for _, item := range p.items {
		if w, ok := item.Expr.(*expression.Wildcard); ok {
			if err := expandWildcard(row, w, out); err != nil {
				return nil, err
			}
			continue
		}

		v, err := item.Expr.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		out.Set(item.Name, v)
	}

	return sql.NewRowFrom(sql.DefaultTable, out), nil
}

func expandWildcard(row *sql.Row, w *expression.Wildcard, out *sql.RowPart) error {
	if w.Table != nil {
		part, ok := row.Part(*w.Table)
		if !ok {
			return sql.ErrTableNotFound.New(*w.Table)
		}
		part.Each(func(name string, v sql.Value) { out.Set(name, v) })
		return nil
	}

	for _, ref := range row.Refs() {
		part, _ := row.Part(ref)
		part.Each(func(name string, v sql.Value) { out.Set(name, v) })
	}
	return nil
}

func (p *projectionIter) Close(ctx *sql.Context) error { return p.input.Close(ctx) }
