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
	"github.com/Anexen/sqc/sql"
)

// subqueryAliasIter rebinds every part of the input row under a single new
// TableReference (spec §4.E SubqueryAlias): the union of columns across
// all existing parts becomes one part keyed by the alias.
type subqueryAliasIter struct {
	alias sql.TableReference
	input RowIter
}

// NewSubqueryAlias wraps input, rebinding its rows under alias.
func NewSubqueryAlias(alias sql.TableReference, input RowIter) RowIter {
	return &subqueryAliasIter{alias: alias, input: input}
}

func (s *subqueryAliasIter) Next(ctx *sql.Context) (*sql.Row, error) {
	row, err := s.input.Next(ctx)
	if err != nil {
		return nil, err
	}

	out := sql.NewRowPart()
	for _, ref := range row.Refs() {
		part, _ := row.Part(ref)
		part.Each(out.Set)
	}
	return sql.NewRowFrom(s.alias, out), nil
}

func (s *subqueryAliasIter) Close(ctx *sql.Context) error { return s.input.Close(ctx) }
