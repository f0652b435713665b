package mml2beep

import "math"

// NumOctaves and NumScales are the dimensions of the frequency table:
// octaves 0 through 8, each with the twelve semitones C through B.
const (
	NumOctaves = 9
	NumScales  = 12
)

// frequencyTable[octave][scale] is the frequency of a semitone in integer
// Hz, in twelve-tone equal temperament anchored at A4 = 440 Hz. Octave 4,
// scale 0 is middle C (262 Hz).
var frequencyTable = func() [NumOctaves][NumScales]int {
	var table [NumOctaves][NumScales]int
	for octave := 0; octave < NumOctaves; octave++ {
		for scale := 0; scale < NumScales; scale++ {
			semitonesFromA4 := float64((octave-4)*NumScales + scale - 9)
			table[octave][scale] = int(math.Round(440 * math.Pow(2, semitonesFromA4/12)))
		}
	}
	return table
}()

// Frequency returns the frequency in Hz of a semitone (0 = C ... 11 = B)
// of an octave (0-8). The lookup is total for all valid indices and panics
// for anything else; callers are expected to have validated the MML ranges
// already.
func Frequency(octave, scale int) int {
	return frequencyTable[octave][scale]
}
