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

import "gopkg.in/src-d/go-errors.v1"

// Runtime error kinds (spec §7). Construct with .New(args...); test with
// .Is(err), matching the teacher's auth.ErrNotAuthorized.Is(err) idiom.
var (
	// ErrTableNotFound is returned when a scan or qualified column/wildcard
	// names a table the context has no source for.
	ErrTableNotFound = errors.NewKind("table not found: %s")

	// ErrColumnNotFound is returned when an unqualified column name
	// matches no part of the row.
	ErrColumnNotFound = errors.NewKind("column not found: %s")

	// ErrAmbiguousColumn is returned when an unqualified column name
	// matches more than one table's part of the row.
	ErrAmbiguousColumn = errors.NewKind("ambiguous column: %s")

	// ErrRuntimeError wraps a host value-system failure (a bad arithmetic
	// operation, a type mismatch the host rejected, etc).
	ErrRuntimeError = errors.NewKind("runtime error: %s")
)
