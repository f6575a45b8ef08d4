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

	"github.com/Anexen/sqc/plan"
	"github.com/Anexen/sqc/sql"
)

// Build compiles a logical plan node into a RowIter, constructing the
// operator tree bottom-up (spec §2 "executor constructed bottom-up").
// Sort consumes its input, and Join its right input, fully inside this
// call; everything else (including Join's left input) is lazy.
func Build(ctx *sql.Context, node plan.Node) (RowIter, error) {
	switch n := node.(type) {
	case *plan.TableScan:
		return NewTableScan(ctx, n.Table, n.Alias, n.Filters)

	case *plan.EmptyRelation:
		return NewEmptyRelation(n.Alias, n.ProduceOneRow), nil

	case *plan.SubqueryAlias:
		input, err := Build(ctx, n.Input)
		if err != nil {
			return nil, err
		}
		return NewSubqueryAlias(n.Alias, input), nil

	case *plan.Filter:
		input, err := Build(ctx, n.Input)
		if err != nil {
			return nil, err
		}
		return NewFilter(n.Predicate, input), nil

	case *plan.Projection:
		input, err := Build(ctx, n.Input)
		if err != nil {
			return nil, err
		}
		return NewProjection(n.Items, input), nil

	case *plan.Sort:
		input, err := Build(ctx, n.Input)
		if err != nil {
			return nil, err
		}
		return NewSort(ctx, n.Fields, input)

	case *plan.Limit:
		input, err := Build(ctx, n.Input)
		if err != nil {
			return nil, err
		}
		return NewLimit(n.Count, n.Offset, input), nil

	case *plan.Join:
		left, err := Build(ctx, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Build(ctx, n.Right)
		if err != nil {
			return nil, err
		}
		return NewInnerJoin(ctx, n.On, n.Filter, left, right)

	default:
		return nil, fmt.Errorf("rowexec: unknown plan node %T", node)
	}
}
