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

package sql

import (
	"context"

	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

// Context carries the per-query standard library context, a request id for
// log correlation and a logger, the way the teacher's sql.Context threads a
// session and tracer through the executor. It also binds table references
// to the host-supplied data for this query (spec §4.E "Context maps table
// name -> host data source") - the engine has no transactions or sessions
// to carry beyond that, so this is deliberately thin.
type Context struct {
	context.Context
	id     string
	logger *logrus.Entry
	tables map[TableReference][]*RowPart
}

// NewContext wraps a standard library context with a fresh request id and
// the given logger (nil uses the package default).
func NewContext(parent context.Context, logger *logrus.Logger) *Context {
	if parent == nil {
		parent = context.Background()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	id := uuid.NewV4().String()
	return &Context{
		Context: parent,
		id:      id,
		logger:  logger.WithField("query_id", id),
		tables:  make(map[TableReference][]*RowPart),
	}
}

// NewEmptyContext returns a Context suitable for tests and one-off calls,
// mirroring the teacher's sql.NewEmptyContext.
func NewEmptyContext() *Context {
	return NewContext(context.Background(), nil)
}

// ID returns the request id assigned to this query.
func (c *Context) ID() string { return c.id }

// Logger returns the structured logger scoped to this query.
func (c *Context) Logger() *logrus.Entry { return c.logger }

// BindTable registers the host-supplied records for ref, already wrapped as
// RowParts. A second bind of the same reference replaces the first.
func (c *Context) BindTable(ref TableReference, rows []*RowPart) {
	c.tables[ref] = rows
}

// ScanTable returns the records bound to ref, or ErrTableNotFound if no
// table was bound under that reference for this query.
func (c *Context) ScanTable(ref TableReference) ([]*RowPart, error) {
	rows, ok := c.tables[ref]
	if !ok {
		return nil, ErrTableNotFound.New(ref)
	}
	return rows, nil
}
