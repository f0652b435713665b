package export_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xfgryujk/mml2beep"
	"github.com/xfgryujk/mml2beep/export"
)

var testTrack = mml2beep.Track{
	{Frequency: 262, Duration: 500},
	{Frequency: 0, Duration: 250},
	{Frequency: 294, Duration: 500},
}

func TestPlayer(t *testing.T) {
	exporter, err := export.New()
	if err != nil {
		t.Fatalf("error creating exporter: %v", err)
	}
	files, err := exporter.Player("test-song", testTrack)
	if err != nil {
		t.Fatalf("error generating player sources: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected .cpp and .h outputs, got %v", len(files))
	}
	cpp := files[".cpp"]
	for _, want := range []string{"Beep(", "Sleep(", "{ 262, 500 },", "{ 0, 250 },", "{ 294, 500 },", "notes[3]"} {
		if !strings.Contains(cpp, want) {
			t.Fatalf("expected the player source to contain %q, got:\n%v", want, cpp)
		}
	}
	header := files[".h"]
	for _, want := range []string{"#ifndef TEST_SONG_H", "TEST_SONG_NUM_NOTES 3", "test_song_notes[3]", "{ 262, 500 },"} {
		if !strings.Contains(header, want) {
			t.Fatalf("expected the header to contain %q, got:\n%v", want, header)
		}
	}
}

func TestPlayerEmptyTrack(t *testing.T) {
	exporter, err := export.New()
	if err != nil {
		t.Fatalf("error creating exporter: %v", err)
	}
	if _, err := exporter.Player("empty", mml2beep.Track{}); err == nil {
		t.Fatalf("expected exporting an empty track to fail")
	}
}

func TestNewFromTemplates(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "player.cpp"), []byte("// {{ .Name }}: {{ len .Notes }} notes"), 0644); err != nil {
		t.Fatalf("error writing template: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.h"), []byte("// {{ .TotalDuration }} ms"), 0644); err != nil {
		t.Fatalf("error writing template: %v", err)
	}
	exporter, err := export.NewFromTemplates(dir)
	if err != nil {
		t.Fatalf("error creating exporter: %v", err)
	}
	files, err := exporter.Player("custom", testTrack)
	if err != nil {
		t.Fatalf("error generating player sources: %v", err)
	}
	if files[".cpp"] != "// custom: 3 notes" {
		t.Fatalf("got unexpected player source: %q", files[".cpp"])
	}
	if files[".h"] != "// 1250 ms" {
		t.Fatalf("got unexpected header: %q", files[".h"])
	}
}
