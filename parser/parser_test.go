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

package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSelect(t *testing.T) {
	sel, err := Parse(`SELECT a, b FROM t WHERE a = 1`)
	require.NoError(t, err)
	require.NotNil(t, sel)
}

func TestParseEmptyQuery(t *testing.T) {
	_, err := Parse("")
	require.True(t, ErrEmptyQuery.Is(err))

	_, err = Parse("   \n  ;  ")
	require.True(t, ErrEmptyQuery.Is(err))
}

func TestParseMultipleStatements(t *testing.T) {
	_, err := Parse(`SELECT 1; SELECT 2`)
	require.True(t, ErrMultipleStatements.Is(err))
}

func TestParseUnsupportedStatement(t *testing.T) {
	_, err := Parse(`DELETE FROM t WHERE a = 1`)
	require.True(t, ErrUnsupported.Is(err))
}

func TestParseInvalidQuery(t *testing.T) {
	_, err := Parse(`SELECT FROM WHERE`)
	require.True(t, ErrInvalidQuery.Is(err))
}

func TestDumpRoundTrips(t *testing.T) {
	out, err := Dump(`SELECT a FROM t`)
	require.NoError(t, err)
	require.Contains(t, out, "select a from t")
}
