package mml2beep_test

import (
	"testing"

	"github.com/xfgryujk/mml2beep"
)

func TestFrequencyAnchors(t *testing.T) {
	anchors := []struct {
		octave, scale, frequency int
	}{
		{4, 9, 440},  // A4, the tuning anchor
		{4, 0, 262},  // middle C
		{4, 2, 294},  // D4
		{5, 0, 523},  // C5
		{3, 11, 247}, // B3
		{1, 0, 33},   // C1, the lowest absolute note
		{0, 11, 31},  // B0
		{0, 0, 16},   // lowest table entry
		{8, 11, 7902},
	}
	for _, a := range anchors {
		if got := mml2beep.Frequency(a.octave, a.scale); got != a.frequency {
			t.Fatalf("octave %v scale %v: got %v Hz, expected %v", a.octave, a.scale, got, a.frequency)
		}
	}
}

func TestFrequencyOctaveDoubling(t *testing.T) {
	// equal temperament doubles every octave; the rounded table should
	// never be off by more than 1 Hz from exactly double
	for octave := 0; octave < mml2beep.NumOctaves-1; octave++ {
		for scale := 0; scale < mml2beep.NumScales; scale++ {
			low, high := mml2beep.Frequency(octave, scale), mml2beep.Frequency(octave+1, scale)
			if diff := high - 2*low; diff < -1 || diff > 1 {
				t.Fatalf("octave %v scale %v: %v Hz is not double %v Hz", octave+1, scale, high, low)
			}
		}
	}
}
