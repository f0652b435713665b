package mml

import (
	"math"

	"github.com/xfgryujk/mml2beep"
	"github.com/xfgryujk/mml2beep/types"
)

// Defaults of a fresh track, per MML convention: middle octave, quarter
// notes, 120 beats per minute.
const (
	defaultOctave = 4
	defaultLength = 4
	defaultTempo  = 120
)

// track is the mutable playback context of one token list while the
// compiler runs.
type track struct {
	tokens []Token
	next   int // index of the next unconsumed token

	octave        int
	defaultLength float64 // note value denominator; fractional once dotted
	localTempo    types.OptionalInteger
	virtualTime   int // ms of output emitted so far
	joining       bool
	events        mml2beep.Track
}

type compiler struct {
	tracks []*track
}

// Parse compiles an MML score into per-track lists of beep events. It is
// the two stages, Lex and Compile, run back to back.
func Parse(input string) (mml2beep.Song, error) {
	tracks, err := Lex(input)
	if err != nil {
		return mml2beep.Song{}, err
	}
	return Compile(tracks)
}

// Compile runs all tracks through their token lists and resolves every
// note into a (frequency, duration) event. The first bad token aborts the
// whole compilation.
func Compile(tokenLists [][]Token) (mml2beep.Song, error) {
	c := compiler{tracks: make([]*track, len(tokenLists))}
	for i, tokens := range tokenLists {
		c.tracks[i] = &track{
			tokens:        tokens,
			octave:        defaultOctave,
			defaultLength: defaultLength,
			events:        mml2beep.Track{},
		}
	}
	for {
		t := c.nextTrack()
		if t == nil {
			break
		}
		token := t.tokens[t.next]
		t.next++
		if err := c.step(t, token); err != nil {
			return mml2beep.Song{}, err
		}
	}
	song := mml2beep.Song{Tracks: make([]mml2beep.Track, len(c.tracks))}
	for i, t := range c.tracks {
		song.Tracks[i] = t.events
	}
	return song, nil
}

// nextTrack selects the track whose token should be processed next: the
// one with the smallest virtual time, later tracks winning ties. It
// returns nil once every track is exhausted. The tie-break matters: it is
// what lets a tempo at the start of a later track govern the first notes
// of the earlier ones.
func (c *compiler) nextTrack() *track {
	var best *track
	for _, t := range c.tracks {
		if t.next >= len(t.tokens) {
			continue
		}
		if best == nil || t.virtualTime <= best.virtualTime {
			best = t
		}
	}
	return best
}

// sharedTempo resolves the tempo for a duration computation. Tempo is a
// resource all tracks share: scanning from the last track to the first,
// the first tempo that has been set so far wins, and 120 is the default
// when no track has set one yet.
func (c *compiler) sharedTempo() int {
	for i := len(c.tracks) - 1; i >= 0; i-- {
		if tempo, ok := c.tracks[i].localTempo.Unpack(); ok {
			return tempo
		}
	}
	return defaultTempo
}

// duration computes a note's length in milliseconds from the shared tempo
// and the length as written, falling back to the track's default length
// when the length has no denominator of its own.
func (c *compiler) duration(t *track, length Length) int {
	denominator := t.defaultLength
	if v, ok := length.Denominator.Unpack(); ok {
		denominator = float64(v)
	}
	if length.Dotted {
		denominator /= 1.5
	}
	tempo := c.sharedTempo()
	return int(math.Round(60 / float64(tempo) * 4 / denominator * 1000))
}

// step processes a single token, mutating the track's state and possibly
// emitting an event.
func (c *compiler) step(t *track, token Token) error {
	switch token.Kind {
	case TokenNote:
		octave, scale := t.octave, token.Scale
		if scale < 0 {
			scale = 11
			octave--
		}
		if scale >= 12 {
			scale = 0
			octave++
		}
		if octave < 1 || octave > 8 {
			return errorAt(token.Line, token.Column, "octave %v out of range 1-8", octave)
		}
		return t.emit(token, mml2beep.Frequency(octave, scale), c.duration(t, token.Length))
	case TokenPause:
		return t.emit(token, 0, c.duration(t, token.Length))
	case TokenJoiner:
		t.joining = true
	case TokenDefaultLength:
		denominator := float64(token.Length.Denominator.OrDefault(defaultLength))
		if token.Length.Dotted {
			denominator /= 1.5
		}
		t.defaultLength = denominator
	case TokenTempo:
		// a bare T carries no value and changes nothing
		if !token.Value.Empty() {
			t.localTempo = token.Value
		}
	case TokenVolume:
		// the grammar has volume, but a beeper has no volume control
	case TokenOctave:
		t.octave = token.Value.OrDefault(defaultOctave)
	case TokenChangeOctave:
		t.octave += token.Delta
		if t.octave < 1 || t.octave > 8 {
			return errorAt(token.Line, token.Column, "octave %v out of range 1-8", t.octave)
		}
	case TokenAbsoluteNote:
		index := token.Index - 1
		octave, scale := index/12+1, index%12
		return t.emit(token, mml2beep.Frequency(octave, scale), c.duration(t, Length{}))
	default:
		return errorAt(token.Line, token.Column, "unknown token kind %v", token.Kind)
	}
	return nil
}

// emit appends an event to the track, or, when a joiner is pending and the
// frequency matches the previous event, merges into it by extending that
// event's duration. Virtual time advances by the duration either way.
func (t *track) emit(token Token, frequency, duration int) error {
	t.virtualTime += duration
	if t.joining {
		t.joining = false
		if len(t.events) == 0 {
			return errorAt(token.Line, token.Column, "missing note to join")
		}
		if last := &t.events[len(t.events)-1]; last.Frequency == frequency {
			last.Duration += duration
			return nil
		}
	}
	t.events = append(t.events, mml2beep.Note{Frequency: frequency, Duration: duration})
	return nil
}
