// Package source provides the file selection for a submission: either a
// path given on the command line or an interactive file picker.
package source

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/idlab-discover/drivescore-cli/internal/apperr"
	"github.com/idlab-discover/drivescore-cli/internal/classify"
)

// AllowedTypes are the extensions the classification service accepts.
var AllowedTypes = []string{".csv", ".json"}

// PathSource selects the file at Path. An empty path means nothing selected.
type PathSource struct {
	Path string
}

// Selected returns the file at Path, or nil when Path is empty.
func (s PathSource) Selected() (*classify.File, error) {
	p := strings.TrimSpace(s.Path)
	if p == "" {
		return nil, nil
	}
	info, err := os.Stat(p)
	if err != nil {
		return nil, apperr.Userf("cannot read %s: %v", p, errors.Unwrap(err))
	}
	if info.IsDir() {
		return nil, apperr.Userf("%s is a directory", p)
	}
	return classify.FileFromPath(p), nil
}

// PickerSource asks the user to pick a file with an interactive form.
// Cancelling the form means nothing selected.
type PickerSource struct {
	Dir string

	// run is swapped in tests.
	run func(form *huh.Form) error
}

// NewPickerSource creates a picker rooted at dir ("" = current directory).
func NewPickerSource(dir string) *PickerSource {
	return &PickerSource{Dir: dir, run: func(form *huh.Form) error { return form.Run() }}
}

// Selected runs the picker and returns the chosen file.
func (s *PickerSource) Selected() (*classify.File, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}

	var path string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewFilePicker().
				Title("Select a data file").
				Description("CSV or JSON telemetry export").
				CurrentDirectory(dir).
				AllowedTypes(AllowedTypes).
				FileAllowed(true).
				DirAllowed(false).
				Picking(true).
				Value(&path),
		),
	)

	if err := s.run(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, fmt.Errorf("file picker: %w", err)
	}
	return PathSource{Path: path}.Selected()
}
