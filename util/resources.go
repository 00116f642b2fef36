// util/resources.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Unfortunately, unlike io.ReadCloser, the zstd Decoder's Close() method
// doesn't return an error, so we need to make our own custom ReadCloser
// interface.
type DataReadCloser interface {
	io.Reader
	Close()
}

type bytesReadCloser struct {
	*bytes.Reader
}

func (bytesReadCloser) Close() {}

// OpenData provides a DataReadCloser to access the specified data file
// (airport and runway databases, aircraft profiles, ...); if it's zstd
// compressed, the Reader will handle decompression transparently.
func OpenData(path string) (DataReadCloser, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return openDataBytes(path, b)
}

func openDataBytes(path string, b []byte) (DataReadCloser, error) {
	br := bytesReadCloser{bytes.NewReader(b)}

	if filepath.Ext(path) == ".zst" {
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}
		return zr, nil
	}

	return br, nil
}

// ReadData returns the (decompressed, if need be) contents of the given
// data file.
func ReadData(path string) ([]byte, error) {
	r, err := OpenData(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

// DataExtension returns the extension of path after removing a trailing
// ".zst", so that "runways.json.zst" gives ".json".
func DataExtension(path string) string {
	if filepath.Ext(path) == ".zst" {
		path = path[:len(path)-len(".zst")]
	}
	return filepath.Ext(path)
}
