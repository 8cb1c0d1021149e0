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

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args after restoring every flag to
// its default, since cobra keeps flag state between executions.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var reset func(c *cobra.Command)
	reset = func(c *cobra.Command) {
		for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
		for _, sub := range c.Commands() {
			reset(sub)
		}
	}
	reset(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "faultx.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

const testConfig = `
log:
  level: error
rules:
  - name: legacy-missing
    contains: "record not found"
    code: empty_result
    reason: legacy.missing
translators:
  builtin: [postgres, sql, redis, grpc]
mapper:
  http_overrides:
    - code: empty_result
      prefix: legacy
      status: 410
`

func TestCheck(t *testing.T) {
	out, err := run(t, "check", "--config", writeConfig(t, testConfig), "-o", "json")
	require.NoError(t, err)

	var entries []chainEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 5)
	assert.Equal(t, chainEntry{Position: 1, Name: "rules", Detail: "1 inline"}, entries[0])
	assert.Equal(t, "grpc", entries[4].Name)

	out, err = run(t, "check", "--config", writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Contains(t, out, "postgres")
}

func TestCheck_UnknownTranslator(t *testing.T) {
	_, err := run(t, "check", "--config", writeConfig(t, "log:\n  level: error\ntranslators:\n  builtin: [oracle]\n"))
	assert.ErrorContains(t, err, "oracle")
}

func TestCheck_BadOutput(t *testing.T) {
	_, err := run(t, "check", "-o", "xml")
	assert.Error(t, err)
}

func translateJSON(t *testing.T, args ...string) translation {
	t.Helper()
	out, err := run(t, append([]string{"translate", "--config", writeConfig(t, testConfig), "-o", "json"}, args...)...)
	require.NoError(t, err)
	var res translation
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	return res
}

func TestTranslate(t *testing.T) {
	res := translateJSON(t, "record not found")
	assert.True(t, res.Translated)
	assert.Equal(t, "empty_result", res.Code)
	assert.Equal(t, "legacy.missing", res.Reason)
	assert.Equal(t, 410, res.HTTP)
	assert.Equal(t, "NotFound", res.GRPC)

	res = translateJSON(t, "--pg", "23505", "duplicate key")
	assert.Equal(t, "duplicate_key", res.Code)
	assert.Equal(t, 409, res.HTTP)

	res = translateJSON(t, "--grpc", "UNAVAILABLE", "down")
	assert.Equal(t, "resource_failure", res.Code)
	assert.True(t, res.Transient)

	res = translateJSON(t, "--sentinel", "redis_nil")
	assert.Equal(t, "empty_result", res.Code)
	assert.Equal(t, 404, res.HTTP)

	res = translateJSON(t, "something else")
	assert.False(t, res.Translated)
	assert.Empty(t, res.Code)
}

func TestTranslate_Errors(t *testing.T) {
	cfg := writeConfig(t, testConfig)
	_, err := run(t, "translate", "--config", cfg)
	assert.Error(t, err)

	_, err = run(t, "translate", "--config", cfg, "--sentinel", "nope")
	assert.Error(t, err)

	_, err = run(t, "translate", "--config", cfg, "--pg", "23505", "--grpc", "NOT_FOUND", "x")
	assert.Error(t, err)
}

func TestTranslate_Table(t *testing.T) {
	out, err := run(t, "translate", "--config", writeConfig(t, testConfig), "--sentinel", "no_rows")
	require.NoError(t, err)
	assert.Contains(t, out, "empty_result")
	assert.Contains(t, out, "404")
}

func TestExplain(t *testing.T) {
	cfg := writeConfig(t, testConfig)

	out, err := run(t, "explain", "--config", cfg, "empty_result", "legacy.orders")
	require.NoError(t, err)
	assert.Contains(t, out, "-> 410")

	out, err = run(t, "explain", "--config", cfg, "-o", "json", "query_timeout")
	require.NoError(t, err)
	var ex explanation
	require.NoError(t, json.Unmarshal([]byte(out), &ex))
	assert.Equal(t, 504, ex.HTTP)
	assert.Equal(t, "DeadlineExceeded", ex.GRPC)
	assert.True(t, ex.Transient)
	assert.Len(t, ex.Trace, 3)

	_, err = run(t, "explain", "--config", cfg, "!!")
	assert.Error(t, err)
}
