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

// Package rowexec is the streaming, pull-based executor (spec §4.E). Every
// plan node compiles to a RowIter; a RowIter's Next is called repeatedly
// until it returns io.EOF, the same convention the teacher's sql/row_test.go
// and sql/plan tests use for their row iterators.
package rowexec

import (
	"io"

	"github.com/Anexen/sqc/sql"
)

// RowIter is the executor's pull interface: each call to Next produces the
// next row, or io.EOF once exhausted. Implementations must return io.EOF
// (not a wrapped error) to signal end-of-stream; any other error aborts
// the query.
type RowIter interface {
	Next(ctx *sql.Context) (*sql.Row, error)
	Close(ctx *sql.Context) error
}

// Collect drains iter into a slice, for materializing operators (Sort,
// the hash side of Join) and for tests.
func Collect(ctx *sql.Context, iter RowIter) ([]*sql.Row, error) {
	var rows []*sql.Row
	for {
		row, err := iter.Next(ctx)
		if err == io.EOF {
			return rows, iter.Close(ctx)
		}
		if err != nil {
			_ = iter.Close(ctx)
			return nil, err
		}
		rows = append(rows, row)
	}
}

// sliceIter replays an in-memory slice of rows, used by Sort, which must
// materialize its input before producing output.
type sliceIter struct {
	rows []*sql.Row
	pos  int
}

func newSliceIter(rows []*sql.Row) *sliceIter {
	return &sliceIter{rows: rows}
}

func (s *sliceIter) Next(ctx *sql.Context) (*sql.Row, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}

func (s *sliceIter) Close(ctx *sql.Context) error { return nil }
