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
	"fmt"
	"io"

	"github.com/spf13/cast"

	"github.com/Anexen/sqc/expression"
	"github.com/Anexen/sqc/sql"
)

// limitIter skips offset rows then yields at most count more (spec §4.E
// Limit). count and offset are evaluated against an empty row the first
// time Next is called, not at construction, matching "evaluate limit and
// offset against an empty row at execution start."
type limitIter struct {
	countExpr  expression.Expr
	offsetExpr expression.Expr
	input      RowIter

	started bool
	count   int
	emitted int
}

// NewLimit wraps input: count is required, offset may be nil (treated as
// 0).
func NewLimit(count, offset expression.Expr, input RowIter) RowIter {
	return &limitIter{countExpr: count, offsetExpr: offset, input: input}
}

func (l *limitIter) Next(ctx *sql.Context) (*sql.Row, error) {
	if !l.started {
		count, offset, err := l.resolve(ctx)
		if err != nil {
			return nil, err
		}
		l.count = count
		l.started = true

		for i := 0; i < offset; i++ {
			if _, err := l.input.Next(ctx); err != nil {
				return nil, err
			}
		}
	}

	if l.emitted >= l.count {
		return nil, io.EOF
	}

	row, err := l.input.Next(ctx)
	if err != nil {
		return nil, err
	}
	l.emitted++
	return row, nil
}

func (l *limitIter) resolve(ctx *sql.Context) (count, offset int, err error) {
	empty := sql.NewRow()

	cv, err := l.countExpr.Eval(ctx, empty)
	if err != nil {
		return 0, 0, err
	}
	count, err = cast.ToIntE(cv.Unwrap())
	if err != nil {
		return 0, 0, fmt.Errorf("rowexec: LIMIT value is not an integer: %w", err)
	}

	if l.offsetExpr == nil {
		return count, 0, nil
	}

	ov, err := l.offsetExpr.Eval(ctx, empty)
	if err != nil {
		return 0, 0, err
	}
	offset, err = cast.ToIntE(ov.Unwrap())
	if err != nil {
		return 0, 0, fmt.Errorf("rowexec: OFFSET value is not an integer: %w", err)
	}
	return count, offset, nil
}

func (l *limitIter) Close(ctx *sql.Context) error { return l.input.Close(ctx) }
