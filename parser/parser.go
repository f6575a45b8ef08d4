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

// Package parser is a thin wrapper over the external SQL lexer/parser
// (spec §1, §6: "the SQL lexer/parser itself" is out of scope and treated
// as a black box producing an AST). It does no lowering of its own; it
// only turns SQL text into the single *sqlparser.Select the planner
// understands and classifies the handful of error kinds spec §7 requires
// (EmptyQuery, MultipleStatements, Unsupported, InvalidQuery).
package parser

import (
	"strings"

	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/src-d/go-vitess.v0/vt/sqlparser"
)

var (
	// ErrEmptyQuery is returned for a blank or whitespace-only query string.
	ErrEmptyQuery = errors.NewKind("query is empty")
	// ErrMultipleStatements is returned when the input contains more than
	// one semicolon-separated statement; this engine executes exactly one.
	ErrMultipleStatements = errors.NewKind("expected a single statement, got multiple")
	// ErrUnsupported is returned for a syntactically valid statement this
	// engine's planner does not lower (anything but SELECT).
	ErrUnsupported = errors.NewKind("unsupported statement: %s")
	// ErrInvalidQuery wraps a parse failure from the underlying parser.
	ErrInvalidQuery = errors.NewKind("invalid query: %s")
)

// Parse parses sql into exactly one *sqlparser.Select, the only statement
// kind this engine's planner lowers (spec §6 SQL surface: SELECT only).
func Parse(sql string) (*sqlparser.Select, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, ErrEmptyQuery.New()
	}

	stmts, err := sqlparser.SplitStatementToPieces(sql)
	if err != nil {
		return nil, ErrInvalidQuery.New(err)
	}

	nonEmpty := make([]string, 0, len(stmts))
	for _, s := range stmts {
		if strings.TrimSpace(s) != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, ErrEmptyQuery.New()
	}
	if len(nonEmpty) > 1 {
		return nil, ErrMultipleStatements.New()
	}

	stmt, err := sqlparser.Parse(nonEmpty[0])
	if err != nil {
		return nil, ErrInvalidQuery.New(err)
	}

	sel, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil, ErrUnsupported.New(sqlparser.String(stmt))
	}
	return sel, nil
}

// Dump returns the underlying parser's debug form of sql's single
// statement, used by the host API's Parse operation (spec §6).
func Dump(sql string) (string, error) {
	sel, err := Parse(sql)
	if err != nil {
		return "", err
	}
	return sqlparser.String(sel), nil
}
