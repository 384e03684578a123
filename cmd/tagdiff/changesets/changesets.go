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

// Package changesets implements the command that builds the changeset-tag
// lookup store from a changeset metadata dump.
package changesets

import (
	"log"
	"log/slog"
	"os"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/tagdiff/changeset"
	"m4o.io/tagdiff/cmd/tagdiff/cli"
)

func init() {
	cli.RootCmd.AddCommand(changesetsCmd)

	flags := changesetsCmd.Flags()
	flags.StringP("store", "s", "changesets.db", "directory to build the changeset store in")
}

var changesetsCmd = &cobra.Command{
	Use:   "changesets <changesets-latest.osm.bz2>",
	Short: "Build the changeset-tag lookup store from a changeset dump",
	Long: `Build the changeset-tag lookup store from a changeset metadata dump,
for use with run --changesets.  The dump may be bzip2 compressed or plain
XML.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		started := time.Now()

		f, err := os.Open(args[0])
		if err != nil {
			log.Fatal(err)
		}

		in, err := cli.WrapInputFile(f)
		if err != nil {
			log.Fatal(err)
		}

		path, _ := cmd.Flags().GetString("store")

		store, err := changeset.Open(changeset.Config{Path: path, Logger: slog.Default()})
		if err != nil {
			log.Fatal(err)
		}

		count, err := store.Load(cmd.Context(), in)
		if err != nil {
			log.Fatal(err)
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		if err := store.Close(); err != nil {
			log.Fatal(err)
		}

		slog.Info("changeset store built",
			"store", path,
			"changesets", humanize.Comma(count),
			"elapsed", time.Since(started).Round(time.Millisecond))
	},
}
