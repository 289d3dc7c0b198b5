// Package store persists the master dataset as a csv file, gzipped
// transparently when the path ends in .gz.
package store

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
)

// Row mirrors the on-disk csv schema. Dates are kept as raw
// yyyy/mm/dd strings here; parsing them is the engine's concern.
type Row struct {
	Date     string `csv:"Date"`
	Format   string `csv:"Format"`
	Category string `csv:"Category"`
	Rank     string `csv:"Rank"`
	Player   string `csv:"Player"`
	Rating   string `csv:"Rating"`
}

func compressed(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

// Load reads the master file. A missing file is not an error: it
// returns an empty dataset and loaded=false so the caller can start
// fresh.
func Load(path string) (rows []Row, loaded bool, err error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	var r io.Reader = f
	if compressed(path) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, false, err
		}
		defer zr.Close()
		r = zr
	}

	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

// Save writes the master file atomically: a sibling temp file is
// written first and renamed over the destination, so an interrupted
// run never leaves a truncated dataset behind.
func Save(path string, rows []Row) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".rankings-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	var w io.Writer = tmp
	var zw *gzip.Writer
	if compressed(path) {
		zw = gzip.NewWriter(tmp)
		w = zw
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		tmp.Close()
		return err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
