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

// Package sql defines the data model shared by the parser, planner and
// executor: scalar values, rows, table references and the host value
// system contract. The engine never inspects a concrete value type; every
// arithmetic, comparison, truthiness, subscript and length operation is
// delegated to whatever Value implementation the host supplies.
package sql

import (
	"fmt"
	"math"
)

// Value is an opaque host-supplied scalar. Implementations are expected to
// be cheap to copy (a handle, not a deep payload) since operators clone
// values freely as rows move through the pipeline.
//
// A nil Value (the Go nil interface) is never passed between operators;
// NULL is represented by Null, a distinguished sentinel tested with IsNull.
type Value interface {
	fmt.Stringer

	// IsNull reports whether this value represents SQL NULL.
	IsNull() bool

	// Unwrap returns the underlying host value (for materializing results
	// back to the caller). Returns nil for NULL.
	Unwrap() any

	// Truthy evaluates the value in a boolean context. Used by WHERE,
	// AND/OR and NOT. NULL is falsy.
	Truthy() bool

	// Compare returns <0, 0 or >0 for self compared to other, following the
	// host's own three-way ordering. Compare is never called with a NULL
	// operand; the evaluator and Sort handle NULL explicitly before
	// delegating here.
	Compare(other Value) (int, error)

	// Equals reports equality for the `=` operator.
	Equals(other Value) (bool, error)

	Add(other Value) (Value, error)
	Sub(other Value) (Value, error)
	Mul(other Value) (Value, error)
	Div(other Value) (Value, error)
	FloorDiv(other Value) (Value, error)
	Mod(other Value) (Value, error)

	// Pos and Neg implement unary + and unary -.
	Pos() (Value, error)
	Neg() (Value, error)

	// Index implements subscript (`->` / `[]`). ok is false when the key
	// does not resolve (missing map key, out-of-range index); the caller
	// (the evaluator) turns that into NULL rather than an error.
	Index(key Value) (v Value, ok bool)

	// Len implements the `length` scalar function.
	Len() (int, error)
}

// nullValue is the sentinel returned by Null.
type nullValue struct{}

func (nullValue) String() string                        { return "NULL" }
func (nullValue) IsNull() bool                           { return true }
func (nullValue) Unwrap() any                            { return nil }
func (nullValue) Truthy() bool                           { return false }
func (nullValue) Compare(Value) (int, error)             { return 0, errNullCompare }
func (nullValue) Equals(Value) (bool, error)             { return false, errNullCompare }
func (nullValue) Add(Value) (Value, error)               { return Null, nil }
func (nullValue) Sub(Value) (Value, error)               { return Null, nil }
func (nullValue) Mul(Value) (Value, error)               { return Null, nil }
func (nullValue) Div(Value) (Value, error)               { return Null, nil }
func (nullValue) FloorDiv(Value) (Value, error)          { return Null, nil }
func (nullValue) Mod(Value) (Value, error)                { return Null, nil }
func (nullValue) Pos() (Value, error)                    { return Null, nil }
func (nullValue) Neg() (Value, error)                    { return Null, nil }
func (nullValue) Index(Value) (Value, bool)               { return Null, false }
func (nullValue) Len() (int, error)                       { return 0, errNullCompare }

var errNullCompare = fmt.Errorf("sql: operation not valid on NULL; the evaluator should have short-circuited")

// Null is the single instance representing SQL NULL. Expression evaluation
// never constructs a second NULL value; compare with IsNull, not ==.
var Null Value = nullValue{}

// IsNull reports whether v is nil or the NULL sentinel.
func IsNull(v Value) bool {
	return v == nil || v.IsNull()
}

// boolValue is the engine's own built-in boolean value, used wherever the
// evaluator synthesizes a truth value rather than fetching one from the
// host (NOT, =, >, >=, <, <=, AND, OR). It satisfies Value like any host
// value would, so a synthesized boolean can itself be compared, negated or
// projected.
type boolValue bool

// Bool wraps b as a sql.Value.
func Bool(b bool) Value { return boolValue(b) }

func (b boolValue) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b boolValue) IsNull() bool { return false }
func (b boolValue) Unwrap() any  { return bool(b) }
func (b boolValue) Truthy() bool { return bool(b) }

func (b boolValue) Compare(other Value) (int, error) {
	o, ok := other.(boolValue)
	if !ok {
		return 0, fmt.Errorf("sql: cannot compare bool with %T", other)
	}
	switch {
	case b == o:
		return 0, nil
	case !bool(b) && bool(o):
		return -1, nil
	default:
		return 1, nil
	}
}

func (b boolValue) Equals(other Value) (bool, error) {
	o, ok := other.(boolValue)
	return ok && b == o, nil
}

func (b boolValue) Add(Value) (Value, error) { return nil, fmt.Errorf("sql: + not valid on bool") }
func (b boolValue) Sub(Value) (Value, error) { return nil, fmt.Errorf("sql: - not valid on bool") }
func (b boolValue) Mul(Value) (Value, error) { return nil, fmt.Errorf("sql: * not valid on bool") }
func (b boolValue) Div(Value) (Value, error) { return nil, fmt.Errorf("sql: / not valid on bool") }
func (b boolValue) FloorDiv(Value) (Value, error) {
	return nil, fmt.Errorf("sql: // not valid on bool")
}
func (b boolValue) Mod(Value) (Value, error) { return nil, fmt.Errorf("sql: %% not valid on bool") }
func (b boolValue) Pos() (Value, error)      { return nil, fmt.Errorf("sql: unary + not valid on bool") }
func (b boolValue) Neg() (Value, error)      { return nil, fmt.Errorf("sql: unary - not valid on bool") }
func (b boolValue) Index(Value) (Value, bool) { return Null, false }
func (b boolValue) Len() (int, error)         { return 0, fmt.Errorf("sql: length not valid on bool") }

// NumberValue is the engine's own built-in numeric value, used wherever the
// evaluator synthesizes a number rather than fetching one from the host
// (length's count, round's rescaled result). Like boolValue, it satisfies
// Value so a synthesized number can flow back through further expressions.
type NumberValue float64

// Number wraps f as a sql.Value.
func Number(f float64) Value { return NumberValue(f) }

func (n NumberValue) String() string {
	if n == NumberValue(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", float64(n))
}

func (n NumberValue) IsNull() bool  { return false }
func (n NumberValue) Unwrap() any   { return float64(n) }
func (n NumberValue) Truthy() bool  { return n != 0 }

func (n NumberValue) Compare(other Value) (int, error) {
	o, ok := other.(NumberValue)
	if !ok {
		return 0, fmt.Errorf("sql: cannot compare number with %T", other)
	}
	switch {
	case n < o:
		return -1, nil
	case n > o:
		return 1, nil
	default:
		return 0, nil
	}
}

func (n NumberValue) Equals(other Value) (bool, error) {
	o, ok := other.(NumberValue)
	return ok && n == o, nil
}

func (n NumberValue) Add(other Value) (Value, error) {
	o, ok := other.(NumberValue)
	if !ok {
		return nil, fmt.Errorf("sql: + not valid between number and %T", other)
	}
	return n + o, nil
}

func (n NumberValue) Sub(other Value) (Value, error) {
	o, ok := other.(NumberValue)
	if !ok {
		return nil, fmt.Errorf("sql: - not valid between number and %T", other)
	}
	return n - o, nil
}

func (n NumberValue) Mul(other Value) (Value, error) {
	o, ok := other.(NumberValue)
	if !ok {
		return nil, fmt.Errorf("sql: * not valid between number and %T", other)
	}
	return n * o, nil
}

func (n NumberValue) Div(other Value) (Value, error) {
	o, ok := other.(NumberValue)
	if !ok {
		return nil, fmt.Errorf("sql: / not valid between number and %T", other)
	}
	if o == 0 {
		return nil, fmt.Errorf("sql: division by zero")
	}
	return n / o, nil
}

func (n NumberValue) FloorDiv(other Value) (Value, error) {
	o, ok := other.(NumberValue)
	if !ok {
		return nil, fmt.Errorf("sql: // not valid between number and %T", other)
	}
	if o == 0 {
		return nil, fmt.Errorf("sql: division by zero")
	}
	return NumberValue(math.Floor(float64(n) / float64(o))), nil
}

func (n NumberValue) Mod(other Value) (Value, error) {
	o, ok := other.(NumberValue)
	if !ok {
		return nil, fmt.Errorf("sql: %% not valid between number and %T", other)
	}
	if o == 0 {
		return nil, fmt.Errorf("sql: division by zero")
	}
	return NumberValue(int64(n) % int64(o)), nil
}

func (n NumberValue) Pos() (Value, error) { return n, nil }
func (n NumberValue) Neg() (Value, error) { return -n, nil }
func (n NumberValue) Index(Value) (Value, bool) { return Null, false }
func (n NumberValue) Len() (int, error) {
	return 0, fmt.Errorf("sql: length not valid on number")
}
