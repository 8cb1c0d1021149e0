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
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/olekukonko/tablewriter"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	gstatus "google.golang.org/grpc/status"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/config"
)

var (
	translatePGState  string
	translateGRPCCode string
	translateSentinel string
)

var sentinels = map[string]error{
	"no_rows":            sql.ErrNoRows,
	"tx_done":            sql.ErrTxDone,
	"conn_done":          sql.ErrConnDone,
	"redis_nil":          redis.Nil,
	"redis_closed":       redis.ErrClosed,
	"mongo_no_documents": mongo.ErrNoDocuments,
	"breaker_open":       gobreaker.ErrOpenState,
	"deadline":           context.DeadlineExceeded,
	"canceled":           context.Canceled,
}

var translateCmd = &cobra.Command{
	Use:   "translate [message]",
	Short: "Run a sample error through the configured chain",
	Long: `Builds a sample error and runs it through the configured translator chain,
then prints the resulting fault and the statuses it maps to.

Without flags the sample is a plain error with the given message, which only
rules can match. The flags build driver errors instead:

  faultx translate --pg 23505 "duplicate key value violates unique constraint"
  faultx translate --grpc NOT_FOUND "order 42"
  faultx translate --sentinel redis_nil`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVar(&translatePGState, "pg", "", "build a *pq.Error with this SQLSTATE")
	translateCmd.Flags().StringVar(&translateGRPCCode, "grpc", "", "build a gRPC status error with this code")
	translateCmd.Flags().StringVar(&translateSentinel, "sentinel", "",
		"wrap a driver sentinel: "+strings.Join(slices.Sorted(maps.Keys(sentinels)), ", "))
	translateCmd.MarkFlagsMutuallyExclusive("pg", "grpc", "sentinel")
}

type translation struct {
	Input      string         `json:"input"`
	Translated bool           `json:"translated"`
	Code       string         `json:"code,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	Message    string         `json:"message,omitempty"`
	Transient  bool           `json:"transient,omitempty"`
	HTTP       int            `json:"http,omitempty"`
	GRPC       string         `json:"grpc,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

func sampleError(message string) (error, error) {
	switch {
	case translateSentinel != "":
		s, ok := sentinels[translateSentinel]
		if !ok {
			return nil, fmt.Errorf("unknown sentinel %q", translateSentinel)
		}
		if message == "" {
			return s, nil
		}
		return fmt.Errorf("%s: %w", message, s), nil
	case translatePGState != "":
		return &pq.Error{Code: pq.ErrorCode(translatePGState), Message: message}, nil
	case translateGRPCCode != "":
		gc, err := config.ParseGRPCCode(translateGRPCCode)
		if err != nil {
			return nil, err
		}
		return gstatus.Error(gc, message), nil
	case message == "":
		return nil, errors.New("a message is required without --pg, --grpc or --sentinel")
	default:
		return errors.New(message), nil
	}
}

func runTranslate(cmd *cobra.Command, args []string) error {
	var message string
	if len(args) == 1 {
		message = args[0]
	}
	sample, err := sampleError(message)
	if err != nil {
		return err
	}

	ic, err := config.NewInterceptor(cfg, logger, nil)
	if err != nil {
		return err
	}
	m, err := config.BuildMapper(cfg.Mapper)
	if err != nil {
		return err
	}

	out := ic.Do(cmd.Context(), "translate", func(context.Context) error { return sample })
	res := translation{Input: sample.Error()}
	if fe, ok := faultx.As(out); ok {
		st := m.Status(fe.Code, fe.Reason)
		res.Translated = true
		res.Code = string(fe.Code)
		res.Reason = string(fe.Reason)
		res.Message = fe.Message
		res.Transient = fe.Transient()
		res.HTTP = st.HTTP
		res.GRPC = st.GRPC.String()
		res.Details = fe.Details
	}

	w := cmd.OutOrStdout()
	if isJSONOutput() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")
	table.Append([]string{"Input", res.Input})
	table.Append([]string{"Translated", strconv.FormatBool(res.Translated)})
	if res.Translated {
		table.Append([]string{"Code", res.Code})
		table.Append([]string{"Reason", res.Reason})
		table.Append([]string{"Message", res.Message})
		table.Append([]string{"Transient", strconv.FormatBool(res.Transient)})
		table.Append([]string{"HTTP", strconv.Itoa(res.HTTP)})
		table.Append([]string{"gRPC", res.GRPC})
		for _, k := range slices.Sorted(maps.Keys(res.Details)) {
			table.Append([]string{"Detail " + k, fmt.Sprint(res.Details[k])})
		}
	}
	return table.Render()
}
