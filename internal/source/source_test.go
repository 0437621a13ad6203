package source

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/huh"

	"github.com/idlab-discover/drivescore-cli/internal/apperr"
)

func TestPathSource(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "trip.csv")
	if err := os.WriteFile(p, []byte("time,SPD\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := PathSource{Path: "  "}.Selected()
	if f != nil || err != nil {
		t.Fatalf("empty path = (%v, %v), want nothing selected", f, err)
	}

	f, err = PathSource{Path: p}.Selected()
	if err != nil || f == nil {
		t.Fatalf("Selected() = (%v, %v)", f, err)
	}
	if f.Name != "trip.csv" {
		t.Fatalf("name = %q", f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "time,SPD\n" {
		t.Fatalf("content = %q", data)
	}

	if _, err := (PathSource{Path: filepath.Join(dir, "missing.csv")}).Selected(); !apperr.IsUser(err) {
		t.Fatalf("missing file err = %v, want user error", err)
	}
	if _, err := (PathSource{Path: dir}).Selected(); !apperr.IsUser(err) {
		t.Fatalf("directory err = %v, want user error", err)
	}
}

func TestPickerSource_AbortMeansNothingSelected(t *testing.T) {
	s := NewPickerSource(t.TempDir())
	s.run = func(*huh.Form) error { return huh.ErrUserAborted }

	f, err := s.Selected()
	if f != nil || err != nil {
		t.Fatalf("Selected() = (%v, %v), want nothing selected", f, err)
	}
}

func TestPickerSource_FormError(t *testing.T) {
	s := NewPickerSource("")
	s.run = func(*huh.Form) error { return errors.New("no tty") }

	if _, err := s.Selected(); err == nil {
		t.Fatalf("expected error")
	}
}
