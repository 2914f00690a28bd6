// Package data reads encounter definitions from data directories, falling
// back to the encounters bundled with the binary.
package data

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed encounters/*.yaml
var bundled embed.FS

// Loader resolves encounters through a list of directories, first match wins.
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a loader with the given directory fallback order.
func NewLoader(dataDirs []string) *Loader {
	return &Loader{dataDirs: dataDirs}
}

// LoadEncounter finds encounters/<name>.yaml and validates it.
func (l *Loader) LoadEncounter(name string) (*Encounter, error) {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
	ref := filepath.Join("encounters", slug+".yaml")

	for _, dir := range l.dataDirs {
		f, err := os.Open(filepath.Join(dir, ref))
		if err != nil {
			continue
		}
		defer f.Close()
		return decode(ref, f)
	}

	f, err := bundled.Open("encounters/" + slug + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("could not find encounter %s in any data directory", name)
	}
	defer f.Close()
	return decode(ref, f)
}

// LoadEncounterFile reads an encounter from an explicit path.
func (l *Loader) LoadEncounterFile(path string) (*Encounter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open encounter: %w", err)
	}
	defer f.Close()
	return decode(path, f)
}

// ListEncounters returns the names of every reachable encounter, sorted.
func (l *Loader) ListEncounters() ([]string, error) {
	seen := map[string]bool{}
	collect := func(fsys fs.FS) error {
		matches, err := fs.Glob(fsys, "encounters/*.yaml")
		if err != nil {
			return err
		}
		for _, m := range matches {
			seen[strings.TrimSuffix(filepath.Base(m), ".yaml")] = true
		}
		return nil
	}

	for _, dir := range l.dataDirs {
		if err := collect(os.DirFS(dir)); err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}
	}
	if err := collect(bundled); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func decode(ref string, r io.Reader) (*Encounter, error) {
	var e Encounter
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&e); err != nil {
		return nil, fmt.Errorf("failed to decode yaml reference %s: %w", ref, err)
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("invalid encounter %s: %w", ref, err)
	}
	return &e, nil
}
