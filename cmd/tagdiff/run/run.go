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

// Package run implements the conversion command: PBF in, tag-change rows out.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"m4o.io/tagdiff"
	"m4o.io/tagdiff/changeset"
	"m4o.io/tagdiff/cmd/tagdiff/cli"
	"m4o.io/tagdiff/internal/sink"
	"m4o.io/tagdiff/model"
	"m4o.io/tagdiff/osmpbf"
)

const progressEvery = 10 * time.Second

func init() {
	cli.RootCmd.AddCommand(runCmd)

	flags := runCmd.Flags()
	flags.StringP("input", "i", "", "input PBF file, - for stdin")
	flags.StringP("output", "o", "", "output file, - for stdout")
	flags.StringArrayP("tag", "t", nil, "only include changes to this tag (repeatable)")
	flags.StringArray("kind", nil, "only include entities of this kind: node, way, relation (repeatable)")
	flags.Int32Slice("uid", nil, "only include changes made by this OSM user id (repeatable)")
	flags.StringSlice("columns", nil, "ordered output columns (default: the standard column set)")
	flags.String("timestamp-format", "datetime", "time column format: datetime or epoch_time")
	flags.StringP("delimiter", "d", ",", "output field delimiter")
	flags.Bool("header", true, "write a header row (default)")
	flags.Bool("no-header", false, "do not write a header row")
	flags.StringP("compression", "c", "auto", "output compression: none, auto, gzip, zstd, lz4, xz")
	flags.String("changesets", "", "changeset store directory built by the changesets command")
	flags.StringArrayP("changeset-tag", "C", nil, "append a changeset_<tag> column (repeatable, requires --changesets)")

	_ = runCmd.MarkFlagRequired("input")
	_ = runCmd.MarkFlagRequired("output")
	runCmd.MarkFlagsMutuallyExclusive("header", "no-header")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Write tag changes from a PBF file as delimited rows",
	Long:  "Write tag changes from a PBF file as delimited rows",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cfg, err := configure(cmd)
		if err != nil {
			log.Fatal(err)
		}

		if err := runDiff(cmd.Context(), cfg); err != nil {
			log.Fatal(err)
		}
	},
}

// config is the fully validated run configuration.  Everything that can be
// rejected is rejected while building it, before any output is produced.
type config struct {
	input       string
	output      string
	compression sink.Compression
	delimiter   byte
	header      bool

	options   []tagdiff.Option
	projector *tagdiff.Projector
	columns   []string

	storePath string
	joinKeys  []string
}

func configure(cmd *cobra.Command) (*config, error) {
	flags := cmd.Flags()

	cfg := &config{header: true}

	cfg.input, _ = flags.GetString("input")
	cfg.output, _ = flags.GetString("output")

	if noHeader, _ := flags.GetBool("no-header"); noHeader {
		cfg.header = false
	}

	compression, _ := flags.GetString("compression")

	c, err := sink.ParseCompression(compression)
	if err != nil {
		return nil, err
	}

	cfg.compression = c

	delimiter, _ := flags.GetString("delimiter")
	if delimiter == `\t` {
		delimiter = "\t"
	}

	if len(delimiter) != 1 {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
	}

	cfg.delimiter = delimiter[0]

	if tags, _ := flags.GetStringArray("tag"); len(tags) > 0 {
		cfg.options = append(cfg.options, tagdiff.WithKeys(tags...))
		slog.Info("only including changes to tags", "tags", tags)
	}

	if names, _ := flags.GetStringArray("kind"); len(names) > 0 {
		kinds, err := parseKinds(names)
		if err != nil {
			return nil, err
		}

		cfg.options = append(cfg.options, tagdiff.WithKinds(kinds...))
	}

	if uids, _ := flags.GetInt32Slice("uid"); len(uids) > 0 {
		ids := make([]model.UID, len(uids))
		for i, uid := range uids {
			ids[i] = model.UID(uid)
		}

		cfg.options = append(cfg.options, tagdiff.WithUIDs(ids...))
		slog.Info("only including changes made by user ids", "uids", uids)
	}

	columns, err := resolveColumns(flags)
	if err != nil {
		return nil, err
	}

	cfg.columns = columns

	projector, err := tagdiff.NewProjector(columns...)
	if err != nil {
		return nil, err
	}

	cfg.projector = projector

	cfg.storePath, _ = flags.GetString("changesets")
	cfg.joinKeys = joinKeys(columns)

	if len(cfg.joinKeys) > 0 && cfg.storePath == "" {
		return nil, errors.New("changeset_<tag> columns require --changesets")
	}

	return cfg, nil
}

// resolveColumns produces the final ordered column list: the caller's list
// verbatim, or the standard set for the chosen timestamp format with any
// requested changeset_<tag> columns appended.
func resolveColumns(flags *pflag.FlagSet) ([]string, error) {
	columns, _ := flags.GetStringSlice("columns")
	if len(columns) > 0 {
		return columns, nil
	}

	format, _ := flags.GetString("timestamp-format")

	switch format {
	case "datetime":
		columns = tagdiff.DatetimeColumns()
	case "epoch_time":
		columns = tagdiff.EpochTimeColumns()
	default:
		return nil, fmt.Errorf("unknown timestamp format %q", format)
	}

	csTags, _ := flags.GetStringArray("changeset-tag")
	for _, tag := range csTags {
		columns = append(columns, tagdiff.ChangesetColumnPrefix+tag)
	}

	return columns, nil
}

func parseKinds(names []string) ([]model.Kind, error) {
	kinds := make([]model.Kind, len(names))

	for i, name := range names {
		switch name {
		case "node", "n":
			kinds[i] = model.NODE
		case "way", "w":
			kinds[i] = model.WAY
		case "relation", "r":
			kinds[i] = model.RELATION
		default:
			return nil, fmt.Errorf("unknown entity kind %q", name)
		}
	}

	return kinds, nil
}

// joinKeys extracts the changeset tag keys requested by changeset_<tag>
// columns, excluding the native changeset_id column.
func joinKeys(columns []string) []string {
	var keys []string

	for _, name := range columns {
		if name == "changeset_id" {
			continue
		}

		if key, ok := strings.CutPrefix(name, tagdiff.ChangesetColumnPrefix); ok && key != "" {
			keys = append(keys, key)
		}
	}

	return keys
}

func runDiff(ctx context.Context, cfg *config) error {
	started := time.Now()

	in, err := openInput(cfg.input)
	if err != nil {
		return err
	}
	defer in.Close()

	var lookup changeset.Lookup

	if cfg.storePath != "" {
		store, err := changeset.Open(changeset.Config{Path: cfg.storePath, ReadOnly: true})
		if err != nil {
			return err
		}
		defer store.Close()

		lookup = store
	}

	out, err := sink.Open(cfg.output, cfg.compression)
	if err != nil {
		return err
	}

	rows, err := tagdiff.NewRowWriter(out, cfg.delimiter)
	if err != nil {
		return err
	}

	source, err := osmpbf.NewSource(ctx, in)
	if err != nil {
		return err
	}

	if cfg.header {
		if err := rows.WriteHeader(cfg.columns); err != nil {
			return err
		}
	}

	differ := tagdiff.NewDiffer(cfg.options...)

	var versions, emitted int64

	lastProgress := time.Now()

	for {
		v, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return err
		}

		versions++

		changes, err := differ.Process(v)
		if err != nil {
			return err
		}

		for _, c := range changes {
			var cstags model.Tags

			if lookup != nil {
				if cstags, err = lookup.Tags(c.Changeset); err != nil {
					return err
				}
			}

			if err := rows.WriteRow(cfg.projector.Project(c, cstags)); err != nil {
				return err
			}

			emitted++
		}

		if versions%1000 == 0 && time.Since(lastProgress) > progressEvery {
			slog.Info("running",
				"versions", humanize.Comma(versions),
				"changes", humanize.Comma(emitted),
				"objects", humanize.Comma(int64(differ.Objects())))

			lastProgress = time.Now()
		}
	}

	if err := rows.Flush(); err != nil {
		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	slog.Info("finished",
		"versions", humanize.Comma(versions),
		"changes", humanize.Comma(emitted),
		"elapsed", time.Since(started).Round(time.Millisecond))

	return nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return os.Stdin, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open input %s: %w", path, err)
	}

	return cli.WrapInputFile(f)
}
