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
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/faultx/config"
	"dirpx.dev/faultx/rules"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and list the translator chain",
	Long: `Validates the log level, rules, built-in translator names and mapper
overrides, then lists the translator chain in priority order. Fails when the
configuration selects no translator at all.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

type chainEntry struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Detail   string `json:"detail,omitempty"`
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	entries, err := describeChain(cfg)
	if err != nil {
		return err
	}
	logger.Debug("configuration valid", zap.Int("translators", len(entries)))

	out := cmd.OutOrStdout()
	if isJSONOutput() {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	table := tablewriter.NewWriter(out)
	table.Header("#", "Translator", "Detail")
	for _, e := range entries {
		table.Append([]string{strconv.Itoa(e.Position), e.Name, e.Detail})
	}
	return table.Render()
}

// describeChain lists the chain config.BuildChain produces for c.
func describeChain(c config.Config) ([]chainEntry, error) {
	var entries []chainEntry
	fromFile := 0
	if c.RulesFile != "" {
		rs, err := rules.Load(c.RulesFile)
		if err != nil {
			return nil, err
		}
		fromFile = len(rs)
	}
	if fromFile+len(c.Rules) > 0 {
		detail := fmt.Sprintf("%d inline", len(c.Rules))
		if c.RulesFile != "" {
			detail += fmt.Sprintf(", %d from %s", fromFile, c.RulesFile)
		}
		entries = append(entries, chainEntry{Name: "rules", Detail: detail})
	}
	for _, name := range c.Translators.Builtin {
		entries = append(entries, chainEntry{Name: name})
	}
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries, nil
}
