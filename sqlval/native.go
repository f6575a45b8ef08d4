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

// Package sqlval is a reference implementation of sql.Value over plain Go
// data (string, bool, int64, float64, []any, map[string]any, ...). It is
// what the engine plugs in when the host hands it a []map[string]any or
// map[string][]map[string]any (spec §6) instead of its own value system.
package sqlval

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"

	"github.com/Anexen/sqc/sql"
)

// Native wraps an arbitrary Go value as a sql.Value.
type Native struct {
	v any
}

// Wrap returns a Native for v, or sql.Null if v is nil.
func Wrap(v any) sql.Value {
	if v == nil {
		return sql.Null
	}
	return Native{v: v}
}

func (n Native) String() string {
	return fmt.Sprint(n.v)
}

func (n Native) IsNull() bool  { return false }
func (n Native) Unwrap() any   { return n.v }

func (n Native) Truthy() bool {
	switch v := n.v.(type) {
	case bool:
		return v
	case string:
		return v != ""
	default:
		f, err := cast.ToFloat64E(n.v)
		if err == nil {
			return f != 0
		}
		return v != nil
	}
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

func (n Native) Compare(other sql.Value) (int, error) {
	o, ok := other.(Native)
	if !ok {
		return 0, fmt.Errorf("sqlval: cannot compare %T with %T", n.v, other)
	}

	if isNumeric(n.v) && isNumeric(o.v) {
		a, err := cast.ToFloat64E(n.v)
		if err != nil {
			return 0, err
		}
		b, err := cast.ToFloat64E(o.v)
		if err != nil {
			return 0, err
		}
		switch {
		case a < b:
			return -1, nil
		case a > b:
			return 1, nil
		default:
			return 0, nil
		}
	}

	as, aerr := cast.ToStringE(n.v)
	bs, berr := cast.ToStringE(o.v)
	if aerr == nil && berr == nil {
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		default:
			return 0, nil
		}
	}

	if reflect.DeepEqual(n.v, o.v) {
		return 0, nil
	}
	return 0, fmt.Errorf("sqlval: values of type %T are not orderable", n.v)
}

func (n Native) Equals(other sql.Value) (bool, error) {
	o, ok := other.(Native)
	if !ok {
		return false, nil
	}
	if isNumeric(n.v) && isNumeric(o.v) {
		c, err := n.Compare(other)
		return err == nil && c == 0, err
	}
	return reflect.DeepEqual(n.v, o.v), nil
}

func (n Native) arith(other sql.Value, op func(a, b float64) float64, intOp func(a, b int64) int64) (sql.Value, error) {
	o, ok := other.(Native)
	if !ok {
		return nil, fmt.Errorf("sqlval: cannot operate on %T and %T", n.v, other)
	}

	if ai, aok := asInt64(n.v); aok {
		if bi, bok := asInt64(o.v); bok && intOp != nil {
			return Wrap(intOp(ai, bi)), nil
		}
	}

	a, err := cast.ToFloat64E(n.v)
	if err != nil {
		return nil, fmt.Errorf("sqlval: %w", err)
	}
	b, err := cast.ToFloat64E(o.v)
	if err != nil {
		return nil, fmt.Errorf("sqlval: %w", err)
	}
	return Wrap(op(a, b)), nil
}

func asInt64(v any) (int64, bool) {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		i, err := cast.ToInt64E(v)
		return i, err == nil
	}
	return 0, false
}

func (n Native) Add(other sql.Value) (sql.Value, error) {
	if as, aok := n.v.(string); aok {
		o, ok := other.(Native)
		if !ok {
			return nil, fmt.Errorf("sqlval: cannot operate on %T and %T", n.v, other)
		}
		if bs, bok := o.v.(string); bok {
			return Wrap(as + bs), nil
		}
	}
	return n.arith(other, func(a, b float64) float64 { return a + b }, func(a, b int64) int64 { return a + b })
}

func (n Native) Sub(other sql.Value) (sql.Value, error) {
	return n.arith(other, func(a, b float64) float64 { return a - b }, func(a, b int64) int64 { return a - b })
}

func (n Native) Mul(other sql.Value) (sql.Value, error) {
	return n.arith(other, func(a, b float64) float64 { return a * b }, func(a, b int64) int64 { return a * b })
}

func (n Native) Div(other sql.Value) (sql.Value, error) {
	o, ok := other.(Native)
	if !ok {
		return nil, fmt.Errorf("sqlval: cannot operate on %T and %T", n.v, other)
	}
	a, err := cast.ToFloat64E(n.v)
	if err != nil {
		return nil, err
	}
	b, err := cast.ToFloat64E(o.v)
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, fmt.Errorf("sqlval: division by zero")
	}
	return Wrap(a / b), nil
}

func (n Native) FloorDiv(other sql.Value) (sql.Value, error) {
	o, ok := other.(Native)
	if !ok {
		return nil, fmt.Errorf("sqlval: cannot operate on %T and %T", n.v, other)
	}
	if ai, aok := asInt64(n.v); aok {
		if bi, bok := asInt64(o.v); bok {
			if bi == 0 {
				return nil, fmt.Errorf("sqlval: division by zero")
			}
			q := ai / bi
			if (ai%bi != 0) && ((ai < 0) != (bi < 0)) {
				q--
			}
			return Wrap(q), nil
		}
	}
	a, err := cast.ToFloat64E(n.v)
	if err != nil {
		return nil, err
	}
	b, err := cast.ToFloat64E(o.v)
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, fmt.Errorf("sqlval: division by zero")
	}
	q := float64(int64(a / b))
	if q > a/b {
		q--
	}
	return Wrap(q), nil
}

func (n Native) Mod(other sql.Value) (sql.Value, error) {
	o, ok := other.(Native)
	if !ok {
		return nil, fmt.Errorf("sqlval: cannot operate on %T and %T", n.v, other)
	}
	if ai, aok := asInt64(n.v); aok {
		if bi, bok := asInt64(o.v); bok {
			if bi == 0 {
				return nil, fmt.Errorf("sqlval: division by zero")
			}
			return Wrap(ai % bi), nil
		}
	}
	a, err := cast.ToFloat64E(n.v)
	if err != nil {
		return nil, err
	}
	b, err := cast.ToFloat64E(o.v)
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, fmt.Errorf("sqlval: division by zero")
	}
	return Wrap(float64(int64(a) % int64(b))), nil
}

func (n Native) Pos() (sql.Value, error) {
	if !isNumeric(n.v) {
		return nil, fmt.Errorf("sqlval: unary + not valid on %T", n.v)
	}
	return n, nil
}

func (n Native) Neg() (sql.Value, error) {
	if ai, ok := asInt64(n.v); ok {
		return Wrap(-ai), nil
	}
	f, err := cast.ToFloat64E(n.v)
	if err != nil {
		return nil, fmt.Errorf("sqlval: unary - not valid on %T", n.v)
	}
	return Wrap(-f), nil
}

func (n Native) Index(key sql.Value) (sql.Value, bool) {
	kn, ok := key.(Native)
	if !ok {
		return sql.Null, false
	}

	switch c := n.v.(type) {
	case map[string]any:
		k, err := cast.ToStringE(kn.v)
		if err != nil {
			return sql.Null, false
		}
		v, ok := c[k]
		if !ok {
			return sql.Null, false
		}
		return Wrap(v), true
	case []any:
		i, err := cast.ToIntE(kn.v)
		if err != nil || i < 0 || i >= len(c) {
			return sql.Null, false
		}
		return Wrap(c[i]), true
	default:
		return sql.Null, false
	}
}

func (n Native) Len() (int, error) {
	switch v := reflect.ValueOf(n.v); v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len(), nil
	case reflect.String:
		return v.Len(), nil
	default:
		return 0, fmt.Errorf("sqlval: length not valid on %T", n.v)
	}
}
