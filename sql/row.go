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

// TableReference is a stable identifier for a table within a query: the
// name it was scanned under, or the alias it was rebound to.
type TableReference string

// DefaultTable is the sentinel TableReference used for rows with no
// natural table origin: Projection output and single-unnamed-table input.
// A single unnamed input table is bound under this name, so a query reads
// it with `FROM data`.
const DefaultTable TableReference = "data"

// RowPart is an ordered mapping from column name to scalar. Order matters:
// it is what a wildcard expands in, and what an un-aliased SELECT * threads
// through to the caller.
type RowPart struct {
	names  []string
	values map[string]Value
}

// NewRowPart builds an empty RowPart ready for Set.
func NewRowPart() *RowPart {
	return &RowPart{values: make(map[string]Value)}
}

// Set appends name/value, or overwrites value in place if name already
// exists (insertion order is preserved on overwrite).
func (p *RowPart) Set(name string, v Value) {
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = v
}

// Get returns the value stored under name and whether it was present.
func (p *RowPart) Get(name string) (Value, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Names returns columns in insertion order.
func (p *RowPart) Names() []string { return p.names }

// Len returns the number of columns.
func (p *RowPart) Len() int { return len(p.names) }

// Each calls fn for every (name, value) pair in insertion order.
func (p *RowPart) Each(fn func(name string, v Value)) {
	for _, name := range p.names {
		fn(name, p.values[name])
	}
}

// Clone makes a shallow copy (values are handles, so this is cheap and
// safe: operators never mutate a Value in place).
func (p *RowPart) Clone() *RowPart {
	out := &RowPart{
		names:  append([]string(nil), p.names...),
		values: make(map[string]Value, len(p.values)),
	}
	for k, v := range p.values {
		out.values[k] = v
	}
	return out
}

// Row is an ordered mapping from TableReference to RowPart: it records
// which table each column came from, which is what lets joins and
// qualified wildcards disambiguate columns across tables.
//
// Order of tables within a Row is insertion order, which matters for the
// unqualified wildcard (`SELECT *`) expansion in Projection.
type Row struct {
	refs  []TableReference
	parts map[TableReference]*RowPart
}

// NewRow builds an empty Row.
func NewRow() *Row {
	return &Row{parts: make(map[TableReference]*RowPart)}
}

// NewRowFrom builds a single-entry Row, as produced by a scan.
func NewRowFrom(ref TableReference, part *RowPart) *Row {
	r := NewRow()
	r.Set(ref, part)
	return r
}

// Set assigns the part for ref, appending ref to the table order if new.
func (r *Row) Set(ref TableReference, part *RowPart) {
	if _, ok := r.parts[ref]; !ok {
		r.refs = append(r.refs, ref)
	}
	r.parts[ref] = part
}

// Part returns the RowPart for ref, if present.
func (r *Row) Part(ref TableReference) (*RowPart, bool) {
	p, ok := r.parts[ref]
	return p, ok
}

// Refs returns the table references present in this row, in insertion
// order.
func (r *Row) Refs() []TableReference { return r.refs }

// Len returns the number of table entries in this row.
func (r *Row) Len() int { return len(r.refs) }

// Extend merges other's entries into r: a TableReference present in both
// has its part extended (not replaced) by other's columns, matching the
// inner-join merge rule in spec §3 and §4.E.
func (r *Row) Extend(other *Row) {
	for _, ref := range other.refs {
		otherPart := other.parts[ref]
		if existing, ok := r.parts[ref]; ok {
			otherPart.Each(existing.Set)
			continue
		}
		r.Set(ref, otherPart.Clone())
	}
}

// Clone makes a deep-enough copy: new Row and RowPart structure, shared
// Value handles.
func (r *Row) Clone() *Row {
	out := NewRow()
	for _, ref := range r.refs {
		out.Set(ref, r.parts[ref].Clone())
	}
	return out
}
