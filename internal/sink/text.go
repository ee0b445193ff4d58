package sink

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianBogado1/disksim/internal/core"
	"github.com/julianBogado1/disksim/internal/geom"
)

// Text writes the legacy plain-text trajectory layout under a base
// directory:
//
//	setup.txt      "<N> <L>" then one wall per line "ax ay bx by"
//	steps/<i>.txt  one particle per line "x y vx vy r"
//	events.txt     one event per line "<time> <KIND> <subject> <target>"
//
// All floats carry 14-digit precision with '.' as the decimal
// separator.
type Text struct {
	dir    string
	events *os.File
	evbuf  *bufio.Writer
}

func NewText(dir string) (*Text, error) {
	if err := os.MkdirAll(filepath.Join(dir, "steps"), 0755); err != nil {
		return nil, err
	}
	f, err := os.Create(filepath.Join(dir, "events.txt"))
	if err != nil {
		return nil, err
	}
	return &Text{dir: dir, events: f, evbuf: bufio.NewWriter(f)}, nil
}

func (t *Text) WriteSetup(particles int, l float64, segments []geom.Segment) error {
	f, err := os.Create(filepath.Join(t.dir, "setup.txt"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d %.14f\n", particles, l)
	for _, s := range segments {
		fmt.Fprintf(w, "%s\n", s)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func (t *Text) WriteStep(snap core.Snapshot) error {
	path := filepath.Join(t.dir, "steps", fmt.Sprintf("%d.txt", snap.Step))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for i := range snap.Particles {
		fmt.Fprintf(w, "%s\n", &snap.Particles[i])
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(t.evbuf, "%s\n", snap.Event)
	return err
}

func (t *Text) Close() error {
	if err := t.evbuf.Flush(); err != nil {
		t.events.Close()
		return err
	}
	return t.events.Close()
}
