// util/cache.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/vmihailenco/msgpack/v5"
)

// CacheDir is the directory under the user's cache directory that holds
// cached objects. Tests may point it elsewhere.
var CacheDir = func() (string, error) {
	cd, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cd, "vfrkit"), nil
}

func fullCachePath(path string) (string, error) {
	cd, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cd, path), nil
}

// CacheKey returns a cache file name derived from the given contents, so
// that a cached object is found again only if its source is unchanged.
func CacheKey(prefix string, contents []byte) string {
	h := sha256.Sum256(contents)
	return prefix + "-" + hex.EncodeToString(h[:8]) + ".msgpack"
}

func CacheStoreObject(path string, obj any) error {
	path, err := fullCachePath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fw, err := flate.NewWriter(f, flate.BestSpeed)
	if err != nil {
		return err
	}

	if err := msgpack.NewEncoder(fw).Encode(obj); err != nil {
		return err
	}
	return fw.Close()
}

func CacheRetrieveObject(path string, obj any) (time.Time, error) {
	path, err := fullCachePath(path)
	if err != nil {
		return time.Time{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return time.Time{}, err
	}

	fr := flate.NewReader(f)
	defer fr.Close()

	return fi.ModTime(), msgpack.NewDecoder(fr).Decode(obj)
}
