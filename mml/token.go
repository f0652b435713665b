package mml

import "github.com/xfgryujk/mml2beep/types"

// TokenKind enumerates the MML commands. The compiler switches over the
// kind and treats one it does not know as an internal error, so adding a
// kind here means extending the compiler too.
type TokenKind int

const (
	TokenNote TokenKind = iota
	TokenPause
	TokenJoiner
	TokenDefaultLength
	TokenTempo
	TokenVolume
	TokenOctave
	TokenChangeOctave
	TokenAbsoluteNote
)

func (k TokenKind) String() string {
	switch k {
	case TokenNote:
		return "note"
	case TokenPause:
		return "pause"
	case TokenJoiner:
		return "joiner"
	case TokenDefaultLength:
		return "default length"
	case TokenTempo:
		return "tempo"
	case TokenVolume:
		return "volume"
	case TokenOctave:
		return "octave"
	case TokenChangeOctave:
		return "octave change"
	case TokenAbsoluteNote:
		return "absolute note"
	}
	return "unknown"
}

type (
	// Length is a note length as written in the score: the denominator of
	// the note value (4 = quarter note), absent meaning "use the track
	// default", and whether the length was dotted, which divides the
	// denominator by 1.5.
	Length struct {
		Denominator types.OptionalInteger
		Dotted      bool
	}

	// Token is one lexed MML command. Kind selects which payload fields
	// mean anything: Scale and Length for a note, Length for a pause or a
	// default length, Value for tempo/volume/octave, Delta for an octave
	// change, Index for an absolute note. Line and Column are the 1-based
	// position of the command's first character.
	Token struct {
		Kind   TokenKind
		Line   int
		Column int
		Scale  int // semitone offset; an accidental may take it to -1 or 12
		Length Length
		Value  types.OptionalInteger
		Delta  int
		Index  int
	}
)
