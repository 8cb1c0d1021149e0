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
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/faultx/config"
)

var (
	cfgFile      string
	outputFormat string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "faultx",
	Short: "Inspect fault translation configuration",
	Long: `faultx loads a fault translation configuration (YAML file plus FAULTX_*
environment variables), validates the translator chain it describes and
shows how errors are translated and mapped to HTTP and gRPC statuses.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: none, FAULTX_* environment only)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table or json")
}

func initConfig(cmd *cobra.Command, _ []string) error {
	if outputFormat != "table" && outputFormat != "json" {
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	l, err := config.NewLogger(c.Log.Level)
	if err != nil {
		return err
	}
	cfg, logger = c, l.With(zap.String("command", cmd.Name()))
	return nil
}

func isJSONOutput() bool {
	return outputFormat == "json"
}
