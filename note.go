// Package mml2beep holds the compiled song model: tracks of (frequency,
// duration) pairs that a player can feed straight to the Windows Beep API.
package mml2beep

import (
	"encoding/json"
	"errors"
	"fmt"
)

type (
	// Note is a single playable event: a frequency in Hz and a duration in
	// milliseconds. Frequency 0 means a rest, during which a player waits
	// instead of beeping. This is all the information the Windows Beep API
	// takes, which is the reason the format exists.
	Note struct {
		Frequency int
		Duration  int
	}

	// Track is the ordered sequence of notes of one voice. A beeper is
	// monophonic, so playing a song means choosing one track of it.
	Track []Note

	// Song is a compiled MML score: one or more tracks that start at the
	// same time and run in parallel.
	Song struct {
		Tracks []Track `yaml:",flow"`
	}
)

// MarshalJSON marshals the note as a [frequency, duration] pair, which is
// the wire format of the beep files this tool has always produced.
func (n Note) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{n.Frequency, n.Duration})
}

// UnmarshalJSON unmarshals a [frequency, duration] pair.
func (n *Note) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("note should be a [frequency, duration] pair: %v", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("note should be a [frequency, duration] pair, but had %v elements", len(pair))
	}
	n.Frequency, n.Duration = pair[0], pair[1]
	return nil
}

func (t Track) Copy() Track {
	notes := make(Track, len(t))
	copy(notes, t)
	return notes
}

// TotalDuration returns the length of the track in milliseconds.
func (t Track) TotalDuration() int {
	total := 0
	for _, n := range t {
		total += n.Duration
	}
	return total
}

func (s *Song) Copy() Song {
	tracks := make([]Track, len(s.Tracks))
	for i, t := range s.Tracks {
		tracks[i] = t.Copy()
	}
	return Song{Tracks: tracks}
}

// TotalDuration returns the length of the song in milliseconds, which is
// the length of its longest track.
func (s *Song) TotalDuration() int {
	total := 0
	for _, t := range s.Tracks {
		if d := t.TotalDuration(); d > total {
			total = d
		}
	}
	return total
}

func (s *Song) Validate() error {
	if len(s.Tracks) == 0 {
		return errors.New("song contains no tracks")
	}
	for _, t := range s.Tracks {
		for _, n := range t {
			if n.Frequency < 0 {
				return errors.New("note frequencies should be non-negative")
			}
			if n.Duration < 0 {
				return errors.New("note durations should be non-negative")
			}
		}
	}
	return nil
}
