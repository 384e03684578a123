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

// Package sink opens the output destination, layering on compression chosen
// explicitly or detected from the filename extension.
package sink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

// Compression selects the codec layered on the output.
type Compression string

// Supported compression modes.
const (
	None Compression = "none"
	Auto Compression = "auto"
	Gzip Compression = "gzip"
	Zstd Compression = "zstd"
	Lz4  Compression = "lz4"
	Xz   Compression = "xz"
)

// ErrUnknownCompression is returned for a compression mode outside the
// supported set.
var ErrUnknownCompression = errors.New("unknown compression")

// Stdout is the output path denoting standard output.
const Stdout = "-"

// ParseCompression validates a compression mode flag value.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(s); c {
	case None, Auto, Gzip, Zstd, Lz4, Xz:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCompression, s)
	}
}

// extensions maps filename extensions onto codecs for Auto mode.
var extensions = map[string]Compression{
	".gz":  Gzip,
	".zst": Zstd,
	".lz4": Lz4,
	".xz":  Xz,
	".csv": None,
	".tsv": None,
	".txt": None,
}

// Open opens the output path, "-" for stdout, and layers on the requested
// compression.  In Auto mode the codec is chosen by filename extension;
// stdout is never compressed in Auto mode, and an unrecognized extension is
// a configuration error.
func Open(path string, compression Compression) (io.WriteCloser, error) {
	if compression == Auto {
		var err error

		compression, err = detect(path)
		if err != nil {
			return nil, err
		}
	}

	var w io.WriteCloser

	if path == Stdout {
		w = nopCloser{os.Stdout}
	} else {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("unable to create output %s: %w", path, err)
		}

		w = f
	}

	return compress(w, compression)
}

func detect(path string) (Compression, error) {
	if path == Stdout {
		return None, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if c, ok := extensions[ext]; ok {
		return c, nil
	}

	return "", fmt.Errorf("cannot auto-detect output compression for %q", path)
}

func compress(w io.WriteCloser, compression Compression) (io.WriteCloser, error) {
	switch compression {
	case None:
		return w, nil
	case Gzip:
		return stacked{Writer: gzip.NewWriter(w), closers: []io.Closer{w}}, nil
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}

		return stacked{Writer: zw, closers: []io.Closer{w}}, nil
	case Lz4:
		return stacked{Writer: lz4.NewWriter(w), closers: []io.Closer{w}}, nil
	case Xz:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, err
		}

		return stacked{Writer: xw, closers: []io.Closer{w}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, compression)
	}
}

// stacked closes the codec before the writers beneath it.
type stacked struct {
	Writer interface {
		io.Writer
		io.Closer
	}
	closers []io.Closer
}

func (s stacked) Write(p []byte) (int, error) {
	return s.Writer.Write(p)
}

func (s stacked) Close() error {
	err := s.Writer.Close()

	for _, c := range s.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	return err
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
