package mml

import (
	"strings"
	"unicode/utf8"

	"github.com/xfgryujk/mml2beep/types"
)

// scales maps the note letters to their semitone offset within an octave.
var scales = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// maxNumber caps parsed numbers so absurdly long digit runs cannot
// overflow; every range check rejects the cap anyway.
const maxNumber = 1 << 30

type lexer struct {
	input  string
	pos    int
	line   int
	col    int
	tracks [][]Token
}

// Lex tokenizes an MML score into one token list per track. Tracks are
// separated by commas, a semicolon stops lexing altogether, and the scan is
// case-insensitive; an optional MML@ prefix is skipped. Values whose range
// the grammar fixes are validated here, while everything that needs track
// state (octave carries, effective lengths, tempo) is left to the compiler.
func Lex(input string) ([][]Token, error) {
	l := &lexer{input: input, line: 1, col: 1, tracks: make([][]Token, 1)}
	if len(input) >= 4 && strings.EqualFold(input[:4], "MML@") {
		for i := 0; i < 4; i++ {
			l.advance()
		}
	}
	for l.pos < len(l.input) {
		line, col := l.line, l.col
		c := upper(l.input[l.pos])
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == ',':
			l.advance()
			l.tracks = append(l.tracks, nil)
		case c == ';':
			return l.tracks, nil
		case isNote(c):
			l.advance()
			scale := scales[c]
			if l.pos < len(l.input) {
				switch l.input[l.pos] {
				case '+', '#':
					scale++
					l.advance()
				case '-':
					scale--
					l.advance()
				}
			}
			length, err := l.length()
			if err != nil {
				return nil, err
			}
			l.push(Token{Kind: TokenNote, Line: line, Column: col, Scale: scale, Length: length})
		case c == 'R':
			l.advance()
			length, err := l.length()
			if err != nil {
				return nil, err
			}
			l.push(Token{Kind: TokenPause, Line: line, Column: col, Length: length})
		case c == '&':
			l.advance()
			l.push(Token{Kind: TokenJoiner, Line: line, Column: col})
		case c == 'L':
			l.advance()
			length, err := l.length()
			if err != nil {
				return nil, err
			}
			l.push(Token{Kind: TokenDefaultLength, Line: line, Column: col, Length: length})
		case c == 'T':
			l.advance()
			value, err := l.rangedNumber(32, 255, "tempo")
			if err != nil {
				return nil, err
			}
			l.push(Token{Kind: TokenTempo, Line: line, Column: col, Value: value})
		case c == 'V':
			l.advance()
			value, err := l.rangedNumber(0, 15, "volume")
			if err != nil {
				return nil, err
			}
			l.push(Token{Kind: TokenVolume, Line: line, Column: col, Value: value})
		case c == 'O':
			l.advance()
			value, err := l.rangedNumber(1, 8, "octave")
			if err != nil {
				return nil, err
			}
			l.push(Token{Kind: TokenOctave, Line: line, Column: col, Value: value})
		case c == '>':
			l.advance()
			l.push(Token{Kind: TokenChangeOctave, Line: line, Column: col, Delta: 1})
		case c == '<':
			l.advance()
			l.push(Token{Kind: TokenChangeOctave, Line: line, Column: col, Delta: -1})
		case c == 'N':
			l.advance()
			index, ok := l.number().Unpack()
			if !ok {
				return nil, errorAt(line, col, "missing note number")
			}
			if index < 1 || index > 96 {
				return nil, errorAt(line, col, "note number %v out of range 1-96", index)
			}
			l.push(Token{Kind: TokenAbsoluteNote, Line: line, Column: col, Index: index})
		default:
			r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
			return nil, errorAt(line, col, "unexpected character %q", r)
		}
	}
	return l.tracks, nil
}

// push appends a token to the track currently being lexed.
func (l *lexer) push(t Token) {
	i := len(l.tracks) - 1
	l.tracks[i] = append(l.tracks[i], t)
}

// advance steps over one byte, keeping the 1-based line and column counters
// in sync.
func (l *lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

// number reads a run of decimal digits. No digits means an absent value,
// not zero.
func (l *lexer) number() types.OptionalInteger {
	value, exists := 0, false
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		if value = value*10 + int(l.input[l.pos]-'0'); value > maxNumber {
			value = maxNumber
		}
		exists = true
		l.advance()
	}
	return types.NewOptionalInteger(value, exists)
}

// rangedNumber reads an optional number and checks it against the range the
// grammar fixes for the command. The error points at the number itself.
func (l *lexer) rangedNumber(min, max int, name string) (types.OptionalInteger, error) {
	line, col := l.line, l.col
	value := l.number()
	if v, ok := value.Unpack(); ok && (v < min || v > max) {
		return value, errorAt(line, col, "%v %v out of range %v-%v", name, v, min, max)
	}
	return value, nil
}

// length reads a note length: an optional denominator and an optional dot.
// A denominator of zero would divide by zero in the duration formula and is
// rejected right away.
func (l *lexer) length() (Length, error) {
	line, col := l.line, l.col
	denominator := l.number()
	if v, ok := denominator.Unpack(); ok && v == 0 {
		return Length{}, errorAt(line, col, "length 0 out of range")
	}
	dotted := false
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		dotted = true
		l.advance()
	}
	return Length{Denominator: denominator, Dotted: dotted}, nil
}

// upper folds an ASCII letter to upper case.
func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isNote(c byte) bool {
	return c >= 'A' && c <= 'G'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
