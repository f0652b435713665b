package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xfgryujk/mml2beep"
	"github.com/xfgryujk/mml2beep/export"
	"github.com/xfgryujk/mml2beep/mml"
	"github.com/xfgryujk/mml2beep/version"
)

func filterExtensions(input map[string]string, extensions []string) map[string]string {
	ret := map[string]string{}
	for _, ext := range extensions {
		extWithDot := "." + ext
		if inputVal, ok := input[extWithDot]; ok {
			ret[extWithDot] = inputVal
		}
	}
	return ret
}

// unmarshalSong reads a previously compiled song back, first as .json, then
// as .yml. A bare track in the beep file format (an array of [frequency,
// duration] pairs) is accepted too and becomes a one-track song.
func unmarshalSong(inputBytes []byte) (mml2beep.Song, error) {
	var song mml2beep.Song
	errJSON := json.Unmarshal(inputBytes, &song)
	if errJSON == nil {
		return song, nil
	}
	var track mml2beep.Track
	if json.Unmarshal(inputBytes, &track) == nil {
		return mml2beep.Song{Tracks: []mml2beep.Track{track}}, nil
	}
	if errYaml := yaml.Unmarshal(inputBytes, &song); errYaml != nil {
		return mml2beep.Song{}, fmt.Errorf("song could not be unmarshaled as a .json (%v) or .yml (%v)", errJSON, errYaml)
	}
	return song, nil
}

func main() {
	safe := flag.Bool("n", false, "Never overwrite files; if file already exists and would be overwritten, give an error.")
	list := flag.Bool("l", false, "Do not write files; just list files that would change instead.")
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	jsonOut := flag.Bool("j", false, "Output the selected track as a .json beep file. This is the default when no other output is requested.")
	yamlOut := flag.Bool("y", false, "Output the whole song as a .yml file.")
	playerOut := flag.Bool("p", false, "Output player source code (.cpp and .h files) for the selected track.")
	midiOut := flag.Bool("m", false, "Output a standard MIDI file (.mid).")
	wavOut := flag.Bool("w", false, "Output the selected track rendered as a .wav file.")
	rawOut := flag.Bool("r", false, "Output the selected track rendered as headerless samples (.raw).")
	pcm16 := flag.Bool("c", false, "Rendered audio should be 16-bit integers, instead of floats.")
	trackNum := flag.Int("t", 1, "Track to export, 1-based. 0 exports all tracks to the .mid file; the other track outputs need one track.")
	tmplDir := flag.String("templates", "", "When outputting player code, use the templates in this directory instead of the built-in ones.")
	outPath := flag.String("o", "", "Directory or filename where to write the output. Extension is ignored. Directory and its parents are created if needed. By default, everything is placed in the same directory where the song file is.")
	extensionsOut := flag.String("e", "", "Output only the player files with these comma separated extensions. For example: cpp,h")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	if !*yamlOut && !*playerOut && !*midiOut && !*wavOut && !*rawOut {
		*jsonOut = true // if the user requests nothing, then output the beep file
	}
	var exporter *export.Exporter
	if *playerOut {
		var err error
		if *tmplDir != "" {
			exporter, err = export.NewFromTemplates(*tmplDir)
		} else {
			exporter, err = export.New()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, `error creating exporter: %v`, err)
			os.Exit(1)
		}
	}
	preferences := MakePreferences()
	if preferences.YmlError != nil {
		fmt.Fprintf(os.Stderr, "warning: parsing the preferences failed: %v\n", preferences.YmlError)
	}
	output := func(filename string, extension string, contents []byte) error {
		if *stdout {
			fmt.Print(string(contents))
			return nil
		}
		_, name := filepath.Split(filename)
		var dir string
		if *outPath != "" {
			// check if it's an already existing directory and the user just forgot trailing slash
			if info, err := os.Stat(*outPath); err == nil && info.IsDir() {
				dir = *outPath
			} else {
				outdir, outname := filepath.Split(*outPath)
				if outdir != "" {
					dir = outdir
				}
				if outname != "" {
					name = outname
				}
			}
		}
		if dir == "" {
			var err error
			dir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
			}
		}
		name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
		f := filepath.Join(dir, name)
		original, err := os.ReadFile(f)
		if err == nil {
			if bytes.Equal(original, contents) {
				return nil // no need to update
			}
			if !*list && *safe {
				return fmt.Errorf("file %v would be overwritten", f)
			}
		}
		if *list {
			fmt.Println(f)
		} else {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("could not create output directory %v: %v", dir, err)
			}
			err := os.WriteFile(f, contents, 0644)
			if err != nil {
				return fmt.Errorf("could not write file %v: %v", f, err)
			}
		}
		return nil
	}
	process := func(filename string) error {
		inputBytes, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("could not read file %v: %v", filename, err)
		}
		var song mml2beep.Song
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".json", ".yml", ".yaml":
			song, err = unmarshalSong(inputBytes)
			if err != nil {
				return err
			}
		default:
			song, err = mml.Parse(string(inputBytes))
			if err != nil {
				return fmt.Errorf("parsing the score failed: %v", err)
			}
		}
		selectTrack := func() (mml2beep.Track, error) {
			if *trackNum < 1 || *trackNum > len(song.Tracks) {
				return nil, fmt.Errorf("track %v out of range 1-%v", *trackNum, len(song.Tracks))
			}
			return song.Tracks[*trackNum-1], nil
		}
		name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		if *jsonOut {
			track, err := selectTrack()
			if err != nil {
				return err
			}
			jsonTrack, err := json.Marshal(track)
			if err != nil {
				return fmt.Errorf("could not marshal the track as json file: %v", err)
			}
			if err := output(filename, ".json", jsonTrack); err != nil {
				return fmt.Errorf("error outputting json file: %v", err)
			}
		}
		if *yamlOut {
			yamlSong, err := yaml.Marshal(song)
			if err != nil {
				return fmt.Errorf("could not marshal the song as yaml file: %v", err)
			}
			if err := output(filename, ".yml", yamlSong); err != nil {
				return fmt.Errorf("error outputting yaml file: %v", err)
			}
		}
		if *playerOut {
			track, err := selectTrack()
			if err != nil {
				return err
			}
			playerFiles, err := exporter.Player(name, track)
			if err != nil {
				return fmt.Errorf("generating player sources failed: %v", err)
			}
			if len(*extensionsOut) > 0 {
				playerFiles = filterExtensions(playerFiles, strings.Split(*extensionsOut, ","))
			}
			for extension, code := range playerFiles {
				if err := output(filename, extension, []byte(code)); err != nil {
					return fmt.Errorf("error outputting %v file: %v", extension, err)
				}
			}
		}
		if *midiOut {
			midiSong := song
			if *trackNum > 0 {
				track, err := selectTrack()
				if err != nil {
					return err
				}
				midiSong = mml2beep.Song{Tracks: []mml2beep.Track{track}}
			}
			midiBytes, err := export.SMF(name, midiSong, preferences.Midi)
			if err != nil {
				return fmt.Errorf("writing the midi file failed: %v", err)
			}
			if err := output(filename, ".mid", midiBytes); err != nil {
				return fmt.Errorf("error outputting mid file: %v", err)
			}
		}
		if *wavOut || *rawOut {
			track, err := selectTrack()
			if err != nil {
				return err
			}
			if *wavOut {
				wavBytes, err := mml2beep.Wav(track, *pcm16)
				if err != nil {
					return fmt.Errorf("rendering the wav file failed: %v", err)
				}
				if err := output(filename, ".wav", wavBytes); err != nil {
					return fmt.Errorf("error outputting wav file: %v", err)
				}
			}
			if *rawOut {
				rawBytes, err := mml2beep.Raw(track, *pcm16)
				if err != nil {
					return fmt.Errorf("rendering the raw file failed: %v", err)
				}
				if err := output(filename, ".raw", rawBytes); err != nil {
					return fmt.Errorf("error outputting raw file: %v", err)
				}
			}
		}
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			mmlfiles, err := filepath.Glob(filepath.Join(param, "*.mml"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not glob the path %v for mml files: %v\n", param, err)
				retval = 1
				continue
			}
			txtfiles, err := filepath.Glob(filepath.Join(param, "*.txt"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not glob the path %v for txt files: %v\n", param, err)
				retval = 1
				continue
			}
			files := append(mmlfiles, txtfiles...)
			for _, file := range files {
				err := process(file)
				if err != nil {
					fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
					retval = 1
				}
			}
		} else {
			err := process(param)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
				retval = 1
			}
		}
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "MML to beep compiler. Inputs .mml scores (or compiled .yml/.json songs), outputs beep .json files, .yml songs, player sources, .mid, .wav or .raw files.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
