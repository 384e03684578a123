// Copyright 2026 the original author or authors.
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

// Package cli holds the root command and helpers shared by the tagdiff
// subcommands.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the root of the tagdiff command tree.
var RootCmd = &cobra.Command{
	Use:   "tagdiff",
	Short: "Convert OSM tag history into delimited tag-change records",
	Long: `tagdiff reads an OpenStreetMap PBF file, diffs the tag set of each
entity version against the previous version of the same entity, and writes
one delimited row per tag key added, removed, or changed.  Feed it a history
file (.osh.pbf) for the full edit history; regular extracts work too.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		configureLogging(verbosity)
	},
}

func init() {
	RootCmd.PersistentFlags().CountP("verbose", "v", "increase verbosity")
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func configureLogging(verbosity int) {
	var level slog.Level

	switch verbosity {
	case 0:
		level = slog.LevelWarn
	case 1:
		level = slog.LevelInfo
	default:
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
