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

// Package explain renders a logical plan as indented text (spec §4.F): a
// structural, depth-first walk over plan.Node, two spaces per level,
// children printed after their parent at one greater indent.
package explain

import (
	"fmt"
	"strings"

	"github.com/Anexen/sqc/plan"
)

// Explain returns the indented textual rendering of node.
func Explain(node plan.Node) string {
	var b strings.Builder
	write(&b, node, 0)
	return b.String()
}

func write(b *strings.Builder, node plan.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString(line(node))
	b.WriteByte('\n')

	for _, child := range node.Children() {
		write(b, child, depth+1)
	}
}

func line(node plan.Node) string {
	switch n := node.(type) {
	case *plan.TableScan:
		return fmt.Sprintf("TableScan: %s", n.Table)

	case *plan.EmptyRelation:
		return fmt.Sprintf("EmptyRelation: %s", n.Alias)

	case *plan.SubqueryAlias:
		return fmt.Sprintf("SubqueryAlias: %s", n.Alias)

	case *plan.Filter:
		return fmt.Sprintf("Filter: [%s]", n.Predicate)

	case *plan.Projection:
		items := make([]string, len(n.Items))
		for i, it := range n.Items {
			items[i] = fmt.Sprintf("%s AS %s", it.Expr, it.Name)
		}
		return fmt.Sprintf("Projection: [%s]", strings.Join(items, ", "))

	case *plan.Sort:
		fields := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			dir := "ASC"
			if f.Descending {
				dir = "DESC"
			}
			nulls := "NULLS LAST"
			if f.NullsFirst {
				nulls = "NULLS FIRST"
			}
			fields[i] = fmt.Sprintf("%s %s %s", f.Expr, dir, nulls)
		}
		return fmt.Sprintf("Sort: [%s]", strings.Join(fields, ", "))

	case *plan.Limit:
		offset := ""
		if n.Offset != nil {
			offset = n.Offset.String()
		}
		return fmt.Sprintf("Limit: %s, Offset: %s", n.Count, offset)

	case *plan.Join:
		pairs := make([]string, len(n.On))
		for i, p := range n.On {
			pairs[i] = fmt.Sprintf("%s = %s", p.Left, p.Right)
		}
		filter := ""
		if n.Filter != nil {
			filter = n.Filter.String()
		}
		return fmt.Sprintf("Inner Join: [%s] filter: %s", strings.Join(pairs, ", "), filter)

	default:
		return fmt.Sprintf("%s", node)
	}
}
