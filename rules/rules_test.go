/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package rules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
)

const doc = `
rules:
  - name: orders-lock
    match: 'lock timeout on table "\w+"'
    code: cannot_acquire_lock
    reason: rules.orders_lock
  - name: legacy-missing
    contains: record not found
    code: Empty-Result
    message: record is gone
  - name: both
    contains: quota
    match: 'exceeded \d+'
    code: transient_resource
`

func TestParseAndCompile(t *testing.T) {
	rs, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, rs, 3)
	assert.Equal(t, "orders-lock", rs[0].Name)

	tr, err := Compile(rs)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Len())

	fe := tr.Translate(errors.New(`pg: lock timeout on table "orders"`))
	require.NotNil(t, fe)
	assert.Equal(t, code.CannotAcquireLock, fe.Code)
	assert.Equal(t, reason.Reason("rules.orders_lock"), fe.Reason)
	assert.Equal(t, "orders-lock", fe.Details["rule"])

	fe = tr.Translate(errors.New("legacy: record not found"))
	require.NotNil(t, fe)
	assert.Equal(t, code.EmptyResult, fe.Code)
	assert.Equal(t, "record is gone", fe.Message)

	assert.Nil(t, tr.Translate(errors.New("quota ok")), "contains without match must not fire")
	fe = tr.Translate(errors.New("quota exceeded 42"))
	require.NotNil(t, fe)
	assert.Equal(t, code.TransientResource, fe.Code)
	assert.Equal(t, "transient_resource", fe.Message)

	assert.Nil(t, tr.Translate(errors.New("something else")))
}

func TestFirstRuleWins(t *testing.T) {
	tr, err := Compile([]Rule{
		{Name: "a", Contains: "boom", Code: "data_integrity"},
		{Name: "b", Contains: "boom", Code: "duplicate_key"},
	})
	require.NoError(t, err)
	chain := faultx.MustChain(tr)
	assert.Equal(t, code.DataIntegrity, faultx.CodeOf(faultx.TranslateIfNecessary(errors.New("boom"), chain)))
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		want string
	}{
		{"no matcher", Rule{Name: "x", Code: "empty_result"}, "needs match or contains"},
		{"bad code", Rule{Name: "x", Contains: "a", Code: "x"}, "code"},
		{"bad reason", Rule{Name: "x", Contains: "a", Code: "empty_result", Reason: "a..b"}, "reason"},
		{"bad regexp", Rule{Name: "x", Match: "(", Code: "empty_result"}, "match"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile([]Rule{tt.rule})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	_, err := Compile([]Rule{{Code: "empty_result"}})
	assert.ErrorIs(t, err, ErrNoMatcher)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("rules:\n  - name: x\n    pattern: y\n"))
	assert.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	rs, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	rs, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, rs, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
