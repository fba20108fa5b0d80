// Copyright 2025 Naren Yellavula
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

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "v0.3.1"

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the command line and returns the process exit code
func execute(args []string) int {
	code := 0
	verbose := false

	// loaded once flags are parsed, so --verbose is honoured
	setup := func() (*Config, zerolog.Logger) {
		config, err := LoadConfig()
		log := newLogger(os.Stderr, config.Log.Level, verbose)
		if err != nil {
			log.Warn().Err(err).Msg("configuration problem, using native byte order")
		}
		return config, log
	}

	var cmdBuild = &cobra.Command{
		Use:   "build <opsFile> <outFile>",
		Short: "Apply an operation log and write the resulting tree",
		Long:  "Build folds an operation log into an AVL tree and writes it in pre-order.\nPrints 1 on success, 0 on an I/O failure and -1 on a malformed log.",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			config, log := setup()
			if cmd.Flags().Changed("progress") {
				config.Build.Progress, _ = cmd.Flags().GetBool("progress")
			}
			code = runBuild(cmd.OutOrStdout(), log, config, args[0], args[1])
		},
	}
	cmdBuild.Flags().Bool("progress", false, "show a progress bar while applying the log")

	var cmdEvaluate = &cobra.Command{
		Use:   "evaluate <treeFile> [treeFile...]",
		Short: "Check tree files for ordering and balance",
		Long:  "Evaluate prints valid,strictBst,balanced for each tree file.\nThe exit status only reflects whether every file deserialized.",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			config, log := setup()
			pretty, _ := cmd.Flags().GetBool("pretty")
			code = runEvaluate(cmd.OutOrStdout(), log, config, args, pretty)
		},
	}
	cmdEvaluate.Flags().Bool("pretty", false, "human readable report")

	var cmdShow = &cobra.Command{
		Use:   "show <treeFile>",
		Short: "Draw a tree file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			config, log := setup()
			copyOut, _ := cmd.Flags().GetBool("copy")
			code = runShow(cmd.OutOrStdout(), log, config, args[0], copyOut)
		},
	}
	cmdShow.Flags().Bool("copy", false, "copy the drawing to the clipboard")

	var cmdOps = &cobra.Command{
		Use:   "ops <outFile> [op...]",
		Short: "Write an operation log from text",
		Long:  "Ops writes a binary operation log. Each op is an opcode and a key, e.g. \"i 5\" \"d 3\".\nSingle character opcodes other than i and d are written as given.",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			config, log := setup()
			script, _ := cmd.Flags().GetString("script")
			ops, err := collectOps(script, args[1:])
			if err != nil {
				log.Error().Err(err).Msg("failed to read operations")
				code = 1
				return
			}
			if err := WriteOpsFile(args[0], ops, config.ByteOrder()); err != nil {
				log.Error().Err(err).Msg("failed to write operation log")
				code = 1
				return
			}
			log.Debug().Int("ops", len(ops)).Str("out", args[0]).Msg("operation log written")
		},
	}
	cmdOps.Flags().String("script", "", "read ops from a file, one or more per line")

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show hbtree configuration settings",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			displaySettings()
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print hbtree usage guide",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), getHelpMessage())
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print hbtree version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:          "hbtree",
		Version:      version,
		Short:        "Build and check height balanced trees",
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildFlag, _ := cmd.Flags().GetBool("build")
			evalFlag, _ := cmd.Flags().GetBool("evaluate")

			switch {
			case buildFlag && !evalFlag && len(args) == 2:
				config, log := setup()
				code = runBuild(cmd.OutOrStdout(), log, config, args[0], args[1])
			case evalFlag && !buildFlag && len(args) == 1:
				config, log := setup()
				code = runEvaluate(cmd.OutOrStdout(), log, config, args, false)
			case !buildFlag && !evalFlag && len(args) == 0:
				_ = cmd.Help()
				code = 1
			default:
				fmt.Fprintln(cmd.ErrOrStderr(), "Invalid arguments.")
				fmt.Fprintf(cmd.ErrOrStderr(), "Usage: %s -b <ops> <out> | -e <tree>\n", cmd.Name())
				code = 1
			}
		},
	}
	rootCmd.Flags().BoolP("build", "b", false, "short form of the build command")
	rootCmd.Flags().BoolP("evaluate", "e", false, "short form of the evaluate command")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging on stderr")

	rootCmd.AddCommand(cmdBuild, cmdEvaluate, cmdShow, cmdOps, cmdSettings, cmdUsage, cmdVersion)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return code
}
