package export

import (
	"bytes"
	"fmt"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/xfgryujk/mml2beep"
)

// SMFOptions are the knobs of the standard MIDI file export. The zero value
// is usable but silent-ish; DefaultSMFOptions gives sensible defaults.
type SMFOptions struct {
	Channel  uint8 `yaml:",omitempty"` // MIDI channel, 0-15
	Program  uint8 `yaml:",omitempty"` // general MIDI program, 0-127
	Velocity uint8 `yaml:",omitempty"` // note velocity, 1-127
}

// DefaultSMFOptions plays on channel 0 with the general MIDI square lead,
// the closest a synthesizer gets to a beeper.
func DefaultSMFOptions() SMFOptions {
	return SMFOptions{Channel: 0, Program: 80, Velocity: 100}
}

// The file is written at 120 BPM with 500 ticks per quarter note, so that
// one tick is exactly one millisecond and event durations carry over
// unchanged.
const (
	smfBPM   = 120
	smfTicks = 500
)

// SMF renders the song as the bytes of a standard MIDI file, one MIDI track
// per song track. Rests advance time without sounding a note.
func SMF(name string, song mml2beep.Song, options SMFOptions) ([]byte, error) {
	if options.Channel > 15 {
		return nil, fmt.Errorf("channel %v out of range 0-15", options.Channel)
	}
	if options.Program > 127 {
		return nil, fmt.Errorf("program %v out of range 0-127", options.Program)
	}
	if options.Velocity > 127 {
		return nil, fmt.Errorf("velocity %v out of range 1-127", options.Velocity)
	}
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(smfTicks)
	for i, track := range song.Tracks {
		var tr smf.Track
		tr.Add(0, smf.MetaTrackSequenceName(fmt.Sprintf("%v/%v", name, i+1)))
		if i == 0 {
			tr.Add(0, smf.MetaTempo(smfBPM))
		}
		tr.Add(0, midi.ProgramChange(options.Channel, options.Program))
		delta := uint32(0)
		for _, n := range track {
			if n.Frequency == 0 {
				delta += uint32(n.Duration)
				continue
			}
			key := frequencyToKey(n.Frequency)
			tr.Add(delta, midi.NoteOn(options.Channel, key, options.Velocity))
			tr.Add(uint32(n.Duration), midi.NoteOff(options.Channel, key))
			delta = 0
		}
		tr.Close(delta)
		if err := s.Add(tr); err != nil {
			return nil, fmt.Errorf("could not add track %v to the midi file: %v", i+1, err)
		}
	}
	buf := new(bytes.Buffer)
	if _, err := s.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("could not write the midi file: %v", err)
	}
	return buf.Bytes(), nil
}

// frequencyToKey finds the MIDI key nearest to a frequency, anchored at
// A4 = 440 Hz = key 69, clamped to the valid key range.
func frequencyToKey(frequency int) uint8 {
	key := int(math.Round(69 + 12*math.Log2(float64(frequency)/440)))
	if key < 0 {
		key = 0
	}
	if key > 127 {
		key = 127
	}
	return uint8(key)
}
