package mml_test

import (
	"reflect"
	"testing"

	"github.com/xfgryujk/mml2beep/mml"
	"github.com/xfgryujk/mml2beep/types"
)

func TestLexNote(t *testing.T) {
	tracks, err := mml.Lex("C")
	if err != nil {
		t.Fatalf("error lexing: %v", err)
	}
	expected := [][]mml.Token{{
		{Kind: mml.TokenNote, Line: 1, Column: 1, Scale: 0},
	}}
	if !reflect.DeepEqual(tracks, expected) {
		t.Fatalf("got different tokens than expected. got: %v expected: %v", tracks, expected)
	}
}

func TestLexAllCommands(t *testing.T) {
	tracks, err := mml.Lex("MML@c+8.r4&l16t180v10o5><n60")
	if err != nil {
		t.Fatalf("error lexing: %v", err)
	}
	expected := [][]mml.Token{{
		{Kind: mml.TokenNote, Line: 1, Column: 5, Scale: 1, Length: mml.Length{Denominator: types.NewOptionalIntegerOf(8), Dotted: true}},
		{Kind: mml.TokenPause, Line: 1, Column: 9, Length: mml.Length{Denominator: types.NewOptionalIntegerOf(4)}},
		{Kind: mml.TokenJoiner, Line: 1, Column: 11},
		{Kind: mml.TokenDefaultLength, Line: 1, Column: 12, Length: mml.Length{Denominator: types.NewOptionalIntegerOf(16)}},
		{Kind: mml.TokenTempo, Line: 1, Column: 15, Value: types.NewOptionalIntegerOf(180)},
		{Kind: mml.TokenVolume, Line: 1, Column: 19, Value: types.NewOptionalIntegerOf(10)},
		{Kind: mml.TokenOctave, Line: 1, Column: 22, Value: types.NewOptionalIntegerOf(5)},
		{Kind: mml.TokenChangeOctave, Line: 1, Column: 24, Delta: 1},
		{Kind: mml.TokenChangeOctave, Line: 1, Column: 25, Delta: -1},
		{Kind: mml.TokenAbsoluteNote, Line: 1, Column: 26, Index: 60},
	}}
	if !reflect.DeepEqual(tracks, expected) {
		t.Fatalf("got different tokens than expected. got: %v expected: %v", tracks, expected)
	}
}

func TestLexScales(t *testing.T) {
	tracks, err := mml.Lex("CDEFGAB")
	if err != nil {
		t.Fatalf("error lexing: %v", err)
	}
	expectedScales := []int{0, 2, 4, 5, 7, 9, 11}
	if len(tracks) != 1 || len(tracks[0]) != len(expectedScales) {
		t.Fatalf("expected one track with %v notes, got %v", len(expectedScales), tracks)
	}
	for i, token := range tracks[0] {
		if token.Scale != expectedScales[i] {
			t.Fatalf("note %v: got scale %v, expected %v", i, token.Scale, expectedScales[i])
		}
	}
}

func TestLexAccidentals(t *testing.T) {
	tracks, err := mml.Lex("C-C+C#B+")
	if err != nil {
		t.Fatalf("error lexing: %v", err)
	}
	expectedScales := []int{-1, 1, 1, 12}
	for i, token := range tracks[0] {
		if token.Scale != expectedScales[i] {
			t.Fatalf("note %v: got scale %v, expected %v", i, token.Scale, expectedScales[i])
		}
	}
}

func TestLexTrackSplitting(t *testing.T) {
	tracks, err := mml.Lex("C,D,")
	if err != nil {
		t.Fatalf("error lexing: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %v", len(tracks))
	}
	if len(tracks[0]) != 1 || len(tracks[1]) != 1 || len(tracks[2]) != 0 {
		t.Fatalf("got wrong token counts: %v", tracks)
	}
}

func TestLexTerminator(t *testing.T) {
	tracks, err := mml.Lex("C;this is not MML at all")
	if err != nil {
		t.Fatalf("error lexing: %v", err)
	}
	if len(tracks) != 1 || len(tracks[0]) != 1 {
		t.Fatalf("expected everything after ; to be ignored, got %v", tracks)
	}
}

func TestLexEmptyInput(t *testing.T) {
	tracks, err := mml.Lex("")
	if err != nil {
		t.Fatalf("error lexing: %v", err)
	}
	if len(tracks) != 1 || len(tracks[0]) != 0 {
		t.Fatalf("expected one empty track, got %v", tracks)
	}
}

func TestLexLineTracking(t *testing.T) {
	tracks, err := mml.Lex("C \t\r\nD\n  E")
	if err != nil {
		t.Fatalf("error lexing: %v", err)
	}
	tokens := tracks[0]
	if tokens[1].Line != 2 || tokens[1].Column != 1 {
		t.Fatalf("expected D at line 2, column 1, got line %v, column %v", tokens[1].Line, tokens[1].Column)
	}
	if tokens[2].Line != 3 || tokens[2].Column != 3 {
		t.Fatalf("expected E at line 3, column 3, got line %v, column %v", tokens[2].Line, tokens[2].Column)
	}
}

func expectError(t *testing.T, input string, line, column int) {
	t.Helper()
	_, err := mml.Lex(input)
	if err == nil {
		t.Fatalf("expected lexing %q to fail", input)
	}
	perr, ok := err.(*mml.ParseError)
	if !ok {
		t.Fatalf("expected a *ParseError, got %T (%v)", err, err)
	}
	if perr.Line != line || perr.Column != column {
		t.Fatalf("expected the error at line %v, column %v, got line %v, column %v (%v)", line, column, perr.Line, perr.Column, perr)
	}
}

func TestLexTempoRange(t *testing.T) {
	expectError(t, "T31", 1, 2)
	expectError(t, "T256", 1, 2)
	if _, err := mml.Lex("T32T255"); err != nil {
		t.Fatalf("expected the tempo range limits to lex, got %v", err)
	}
}

func TestLexVolumeRange(t *testing.T) {
	expectError(t, "V16", 1, 2)
	if _, err := mml.Lex("V0V15"); err != nil {
		t.Fatalf("expected the volume range limits to lex, got %v", err)
	}
}

func TestLexOctaveRange(t *testing.T) {
	expectError(t, "O0", 1, 2)
	expectError(t, "O9", 1, 2)
	if _, err := mml.Lex("O1O8"); err != nil {
		t.Fatalf("expected the octave range limits to lex, got %v", err)
	}
}

func TestLexAbsoluteNoteRange(t *testing.T) {
	expectError(t, "N", 1, 1)
	expectError(t, "N0", 1, 1)
	expectError(t, "N97", 1, 1)
	if _, err := mml.Lex("N1N96"); err != nil {
		t.Fatalf("expected the note number range limits to lex, got %v", err)
	}
}

func TestLexZeroLength(t *testing.T) {
	expectError(t, "C0", 1, 2)
	expectError(t, "L0", 1, 2)
	expectError(t, "R0", 1, 2)
}

func TestLexUnexpectedCharacter(t *testing.T) {
	expectError(t, "C X", 1, 3)
	expectError(t, "C\nC!", 2, 2)
}

func TestLexOptionalValues(t *testing.T) {
	tracks, err := mml.Lex("TVOL.")
	if err != nil {
		t.Fatalf("error lexing: %v", err)
	}
	tokens := tracks[0]
	if !tokens[0].Value.Empty() || !tokens[1].Value.Empty() || !tokens[2].Value.Empty() {
		t.Fatalf("expected T, V and O without digits to carry no value, got %v", tokens)
	}
	if !tokens[3].Length.Denominator.Empty() || !tokens[3].Length.Dotted {
		t.Fatalf("expected L. to have no denominator and a dot, got %v", tokens[3].Length)
	}
}
