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
	"strings"

	"github.com/spf13/cobra"

	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/config"
	"dirpx.dev/faultx/reason"
)

var explainCmd = &cobra.Command{
	Use:   "explain <code> [reason]",
	Short: "Show how a code and reason resolve to HTTP and gRPC statuses",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

type explanation struct {
	Code      string   `json:"code"`
	Reason    string   `json:"reason,omitempty"`
	Transient bool     `json:"transient"`
	HTTP      int      `json:"http"`
	GRPC      string   `json:"grpc"`
	Trace     []string `json:"trace"`
}

func runExplain(cmd *cobra.Command, args []string) error {
	c, err := code.Parse(args[0])
	if err != nil {
		return fmt.Errorf("code %q: %w", args[0], err)
	}
	var r reason.Reason
	if len(args) == 2 {
		if r, err = reason.Parse(args[1]); err != nil {
			return fmt.Errorf("reason %q: %w", args[1], err)
		}
	}
	m, err := config.BuildMapper(cfg.Mapper)
	if err != nil {
		return err
	}

	st := m.Status(c, r)
	trace := m.Explain(c, r)
	if isJSONOutput() {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(explanation{
			Code:      string(c),
			Reason:    string(r),
			Transient: c.IsTransient(),
			HTTP:      st.HTTP,
			GRPC:      st.GRPC.String(),
			Trace:     strings.Split(trace, "\n"),
		})
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), trace)
	return err
}
