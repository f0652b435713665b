package export

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig"

	"github.com/xfgryujk/mml2beep"
)

// Exporter renders compiled tracks as source code through text templates.
type Exporter struct {
	Template *template.Template
}

//go:embed templates/*
var templateFS embed.FS

// playerMacros is the data the player templates see.
type playerMacros struct {
	Name          string
	Notes         mml2beep.Track
	TotalDuration int
}

// New returns an exporter using the built-in templates.
func New() (*Exporter, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.*")
	if err != nil {
		return nil, fmt.Errorf(`could not create templates: %v`, err)
	}
	return &Exporter{Template: tmpl}, nil
}

// NewFromTemplates returns an exporter using the templates in the given
// directory instead of the built-in ones.
func NewFromTemplates(templateDirectory string) (*Exporter, error) {
	globPtrn := filepath.Join(templateDirectory, "*.*")
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseGlob(globPtrn)
	if err != nil {
		return nil, fmt.Errorf(`could not create template based on directory "%v": %v`, templateDirectory, err)
	}
	return &Exporter{Template: tmpl}, nil
}

// Player generates player source code for one track: a self-contained
// .cpp that beeps through the Windows Beep API and a data-only .h for
// embedding the track in another program. The returned map is extension ->
// file contents. The name ends up in identifiers in the generated code.
func (e *Exporter) Player(name string, track mml2beep.Track) (map[string]string, error) {
	if len(track) == 0 {
		return nil, errors.New("the track has no notes")
	}
	templates := []string{"player.cpp", "notes.h"}
	data := playerMacros{Name: name, Notes: track, TotalDuration: track.TotalDuration()}
	retmap := map[string]string{}
	for _, templateName := range templates {
		populatedTemplate, extension, err := e.render(templateName, &data)
		if err != nil {
			return nil, fmt.Errorf(`could not execute template "%v": %v`, templateName, err)
		}
		retmap[extension] = populatedTemplate
	}
	return retmap, nil
}

func (e *Exporter) render(templateName string, data interface{}) (string, string, error) {
	result := bytes.NewBufferString("")
	err := e.Template.ExecuteTemplate(result, templateName, data)
	extension := filepath.Ext(templateName)
	return result.String(), extension, err
}
