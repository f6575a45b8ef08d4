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
	"github.com/Anexen/sqc/sql"
)

// filterIter drops rows for which Predicate is false or NULL (spec §4.E
// Filter). It is lazy: each Next pulls from input until a match or EOF.
type filterIter struct {
	predicate expression.Expr
	input     RowIter
}

// NewFilter wraps input, keeping only rows matching predicate.
func NewFilter(predicate expression.Expr, input RowIter) RowIter {
	return &filterIter{predicate: predicate, input: input}
}

func (f *filterIter) Next(ctx *sql.Context) (*sql.Row, error) {
	for {
		row, err := f.input.Next(ctx)
		if err != nil {
			return nil, err
		}
		v, err := f.predicate.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		if v.Truthy() {
			return row, nil
		}
	}
}

func (f *filterIter) Close(ctx *sql.Context) error { return f.input.Close(ctx) }
