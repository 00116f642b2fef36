// aviation/deviation_test.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vfrkit/vfrkit/math"
)

func mustDeviationTable(t *testing.T, entries ...DeviationEntry) DeviationTable {
	t.Helper()
	d, err := MakeDeviationTable(entries...)
	if err != nil {
		t.Fatalf("MakeDeviationTable: %v", err)
	}
	return d
}

func TestDeviationCorrect(t *testing.T) {
	card := mustDeviationTable(t,
		DeviationEntry{For: 270, Steer: 268},
		DeviationEntry{For: 0, Steer: 2},
		DeviationEntry{For: 180, Steer: 182},
		DeviationEntry{For: 90, Steer: 88})

	tests := []struct {
		name    string
		heading float32
		compass float32
	}{
		{"exact entry", 90, 88},
		{"exact north", 0, 2},
		{"offsets cancel", 45, 45},
		{"quarter way", 22.5, 23.5},
		{"across north", 315, 315},
		{"just west of north", 337.5, 338.5},
		{"360 is north", 360, 2},
		{"negative heading", -90, 268},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := card.Correct(tt.heading); math.Abs(c-tt.compass) > 1e-3 {
				t.Errorf("Correct(%f) = %f, expected %f", tt.heading, c, tt.compass)
			}
		})
	}
}

func TestDeviationWrapAcrossNorth(t *testing.T) {
	// Steer values on both sides of north must interpolate continuously.
	card := mustDeviationTable(t,
		DeviationEntry{For: 10, Steer: 8},
		DeviationEntry{For: 180, Steer: 180},
		DeviationEntry{For: 350, Steer: 352})

	if c := card.Correct(0); math.Abs(c) > 1e-3 && math.Abs(c-360) > 1e-3 {
		t.Errorf("Correct(0) = %f, expected 0", c)
	}
	if c := card.Correct(355); math.Abs(c-356) > 1e-3 {
		t.Errorf("Correct(355) = %f, expected 356", c)
	}
	if c := card.Correct(5); math.Abs(c-4) > 1e-3 {
		t.Errorf("Correct(5) = %f, expected 4", c)
	}
	if d := card.Deviation(350); math.Abs(d-2) > 1e-3 {
		t.Errorf("Deviation(350) = %f, expected 2", d)
	}
	if d := card.Deviation(10); math.Abs(d+2) > 1e-3 {
		t.Errorf("Deviation(10) = %f, expected -2", d)
	}
}

func TestDeviationNoop(t *testing.T) {
	var empty DeviationTable
	single := mustDeviationTable(t, DeviationEntry{For: 90, Steer: 95})
	for _, h := range []float32{0, 45, 90, 359.5} {
		if c := empty.Correct(h); c != h {
			t.Errorf("empty table: Correct(%f) = %f", h, c)
		}
		if c := single.Correct(h); c != h {
			t.Errorf("single entry: Correct(%f) = %f", h, c)
		}
	}
}

func TestDeviationTableCopiesInput(t *testing.T) {
	entries := []DeviationEntry{{For: 180, Steer: 178}, {For: 0, Steer: 3}}
	card := mustDeviationTable(t, entries...)
	if entries[0].For != 180 {
		t.Errorf("caller's entries were reordered")
	}
	if e := card.Entries(); e[0].For != 0 || e[1].For != 180 {
		t.Errorf("entries not sorted: %+v", e)
	}
}

func TestDeviationTableErrors(t *testing.T) {
	for _, e := range []DeviationEntry{{For: 360, Steer: 0}, {For: -1, Steer: 0}} {
		if _, err := MakeDeviationTable(e); !errors.Is(err, ErrInvalidDeviationEntry) {
			t.Errorf("%+v: expected ErrInvalidDeviationEntry, got %v", e, err)
		}
	}
}

func TestLoadDeviationTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.json")
	err := os.WriteFile(path, []byte(`[{"for": 90, "steer": 92}, {"for": 270, "steer": 268}]`), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	card, err := LoadDeviationTable(path)
	if err != nil {
		t.Fatalf("LoadDeviationTable: %v", err)
	}
	if card.Len() != 2 {
		t.Errorf("got %d entries, expected 2", card.Len())
	}
	if c := card.Correct(180); math.Abs(c-180) > 1e-3 {
		t.Errorf("Correct(180) = %f, expected 180", c)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("[{\"for\": 90,\n \"steer\": }]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDeviationTable(bad); err == nil {
		t.Errorf("expected an error for malformed JSON")
	}
}
