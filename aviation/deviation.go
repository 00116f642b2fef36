// aviation/deviation.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"slices"

	"github.com/vfrkit/vfrkit/math"
	"github.com/vfrkit/vfrkit/util"
)

// DeviationEntry is one line of a compass deviation card: to steer a
// compass heading of Steer, the magnetic heading flown was For.
type DeviationEntry struct {
	For   float32 `json:"for" yaml:"for"`
	Steer float32 `json:"steer" yaml:"steer"`
}

// offset returns Steer-For in [-180,180] so that entries either side of
// north (e.g. 352 for 350 and 008 for 010) interpolate continuously.
func (e DeviationEntry) offset() float32 {
	return math.NormalizeSigned(e.Steer - e.For)
}

// DeviationTable maps magnetic headings to compass headings. The zero
// value is a valid table that performs no correction.
type DeviationTable struct {
	entries []DeviationEntry // sorted by For
}

// MakeDeviationTable returns a table holding a sorted copy of the given
// entries; the caller's slice is not modified.
func MakeDeviationTable(entries ...DeviationEntry) (DeviationTable, error) {
	for _, e := range entries {
		if e.For < 0 || e.For >= 360 || math.IsNaN(e.For) || math.IsNaN(e.Steer) {
			return DeviationTable{}, fmt.Errorf("%.1f: %w", e.For, ErrInvalidDeviationEntry)
		}
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b DeviationEntry) int {
		if a.For < b.For {
			return -1
		} else if a.For > b.For {
			return 1
		}
		return 0
	})
	return DeviationTable{entries: sorted}, nil
}

// LoadDeviationTable reads a JSON array of {"for", "steer"} entries from
// the given (possibly zstd-compressed) file.
func LoadDeviationTable(path string) (DeviationTable, error) {
	b, err := util.ReadData(path)
	if err != nil {
		return DeviationTable{}, err
	}
	var entries []DeviationEntry
	if err := util.UnmarshalJSONBytes(b, &entries); err != nil {
		return DeviationTable{}, fmt.Errorf("%s: %w", path, err)
	}
	return MakeDeviationTable(entries...)
}

func (d DeviationTable) Len() int { return len(d.entries) }

// Entries returns a copy of the sorted entries.
func (d DeviationTable) Entries() []DeviationEntry { return slices.Clone(d.entries) }

// Correct returns the compass course to steer for the given magnetic
// heading. Headings outside the table's range are interpolated between
// the last and first entries across north. With fewer than two entries
// the heading is returned unchanged.
func (d DeviationTable) Correct(magneticHeading float32) float32 {
	h := math.NormalizeHeading(magneticHeading)
	if len(d.entries) < 2 {
		return h
	}
	return math.NormalizeHeading(h + d.offsetAt(h))
}

// Deviation returns the compass deviation (compass - magnetic) applied
// at the given magnetic heading, in [-180,180].
func (d DeviationTable) Deviation(magneticHeading float32) float32 {
	h := math.NormalizeHeading(magneticHeading)
	return math.NormalizeSigned(d.Correct(h) - h)
}

func (d DeviationTable) offsetAt(h float32) float32 {
	first, last := d.entries[0], d.entries[len(d.entries)-1]

	var lo, hi DeviationEntry
	var t float32
	if h < first.For || h > last.For {
		// Wrap across north.
		lo, hi = last, first
		span := (360 - last.For) + first.For
		dist := h - last.For
		if h < first.For {
			dist += 360
		}
		if span > 0 {
			t = dist / span
		}
	} else {
		i, found := slices.BinarySearchFunc(d.entries, h, func(e DeviationEntry, h float32) int {
			if e.For < h {
				return -1
			} else if e.For > h {
				return 1
			}
			return 0
		})
		if found {
			return d.entries[i].offset()
		}
		lo, hi = d.entries[i-1], d.entries[i]
		if span := hi.For - lo.For; span > 0 {
			t = (h - lo.For) / span
		}
	}

	return math.Lerp(t, lo.offset(), hi.offset())
}
