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

package sqc

import (
	"gopkg.in/src-d/go-errors.v1"

	"github.com/Anexen/sqc/parser"
	"github.com/Anexen/sqc/planner"
	"github.com/Anexen/sqc/sql"
)

// Kind classifies an error returned by Engine so a host can distinguish
// parse/plan/runtime failures without string matching (spec §7).
type Kind int

const (
	KindUnknown Kind = iota
	KindParser
	KindPlanner
	KindRuntime
)

// Classify maps err to the phase that produced it, walking the go-errors.v1
// kinds registered by parser, planner and sql (spec §7: "errors... must be
// reported with messages naming the offending entity"; Classify adds the
// coarse phase on top of that message).
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case isAnyKind(err, parser.ErrEmptyQuery, parser.ErrMultipleStatements, parser.ErrUnsupported, parser.ErrInvalidQuery):
		return KindParser
	case isAnyKind(err, planner.ErrPlan):
		return KindPlanner
	case isAnyKind(err, sql.ErrTableNotFound, sql.ErrColumnNotFound, sql.ErrAmbiguousColumn, sql.ErrRuntimeError):
		return KindRuntime
	default:
		return KindUnknown
	}
}

func isAnyKind(err error, kinds ...*errors.Kind) bool {
	for _, k := range kinds {
		if k.Is(err) {
			return true
		}
	}
	return false
}
