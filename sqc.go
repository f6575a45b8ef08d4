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

// Package sqc is the embeddable SQL query engine's host API (spec §6):
// Query, Parse and Explain. It is the only package a host program needs to
// import; everything else is wiring.
package sqc

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Anexen/sqc/explain"
	"github.com/Anexen/sqc/parser"
	"github.com/Anexen/sqc/planner"
	"github.com/Anexen/sqc/rowexec"
	"github.com/Anexen/sqc/sql"
	"github.com/Anexen/sqc/sqlval"
)

// Config controls logging for queries run through an Engine. A zero Config
// is valid and uses logrus's standard logger, mirroring the teacher's
// Engine Config defaulting pattern.
type Config struct {
	Logger *logrus.Logger
}

// Engine runs SELECT queries over host-supplied in-memory data.
type Engine struct {
	cfg Config
}

// New builds an Engine. A nil cfg uses the default Config.
func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Engine{cfg: *cfg}
}

// Data is what a caller passes to Query: either a single table's records,
// or a name -> records mapping for a multi-table query (spec §6 "data may
// be: absent, a single sequence (bound as 'data'), or a mapping name ->
// sequence").
type Data interface{}

// Query parses, plans and executes sql end to end, returning the result
// records in the same []map[string]any shape the host's input arrived in
// (spec §6 `query(sql, data?) -> list of result records`).
func (e *Engine) Query(sql string, data Data) ([]map[string]any, error) {
	ctx := sql2ctx(e.cfg)

	sel, err := parser.Parse(sql)
	if err != nil {
		return nil, err
	}

	node, err := planner.Plan(sel)
	if err != nil {
		return nil, err
	}

	if err := bindData(ctx, data); err != nil {
		return nil, err
	}

	iter, err := rowexec.Build(ctx, node)
	if err != nil {
		return nil, err
	}

	var out []map[string]any
	for {
		row, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = iter.Close(ctx)
			return nil, err
		}
		out = append(out, materialize(row))
	}
	return out, nil
}

// Parse returns the underlying parser's debug form of sql (spec §6
// `parse(sql) -> AST text dump`).
func (e *Engine) Parse(sqlText string) (string, error) {
	return parser.Dump(sqlText)
}

// Explain returns the indented plan rendering of sql (spec §6
// `explain(sql) -> plan text`, §4.F).
func (e *Engine) Explain(sqlText string) (string, error) {
	sel, err := parser.Parse(sqlText)
	if err != nil {
		return "", err
	}
	node, err := planner.Plan(sel)
	if err != nil {
		return "", err
	}
	return explain.Explain(node), nil
}

func sql2ctx(cfg Config) *sql.Context {
	return sql.NewContext(nil, cfg.Logger)
}

// bindData binds data's tables into ctx, interpreting the three shapes
// spec §6 allows for the query(sql, data?) parameter.
func bindData(ctx *sql.Context, data Data) error {
	switch d := data.(type) {
	case nil:
		return nil
	case []map[string]any:
		ctx.BindTable(sql.DefaultTable, wrapRecords(d))
		return nil
	case map[string][]map[string]any:
		for name, records := range d {
			ctx.BindTable(sql.TableReference(name), wrapRecords(records))
		}
		return nil
	default:
		return sql.ErrRuntimeError.New("unsupported data shape; expected []map[string]any or map[string][]map[string]any")
	}
}

func wrapRecords(records []map[string]any) []*sql.RowPart {
	parts := make([]*sql.RowPart, len(records))
	for i, rec := range records {
		part := sql.NewRowPart()
		for k, v := range rec {
			part.Set(k, sqlval.Wrap(v))
		}
		parts[i] = part
	}
	return parts
}

// materialize flattens a result row back into a single map, unwrapping
// every value to the host's own representation. A result row always has
// exactly one part, keyed under sql.DefaultTable, by construction of
// Projection (spec §4.E).
func materialize(row *sql.Row) map[string]any {
	out := make(map[string]any)
	for _, ref := range row.Refs() {
		part, _ := row.Part(ref)
		part.Each(func(name string, v sql.Value) {
			out[name] = v.Unwrap()
		})
	}
	return out
}
