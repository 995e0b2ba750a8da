package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const metadataFile = "metadata.json"

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Artifact is a file written alongside the run metadata.
type Artifact struct {
	Name  string
	Write func(w io.Writer) error
}

// Save creates a run directory holding metadata.json and every artifact.
// The metadata ID, Timestamp and Files fields are filled in here.
func (s *Store) Save(meta RunMetadata, artifacts ...Artifact) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = s.now()
	}
	runID, runDir, err := s.allocate(meta.Name, meta.Timestamp)
	if err != nil {
		return "", err
	}
	meta.ID = runID
	meta.Files = make([]string, 0, len(artifacts))

	for _, a := range artifacts {
		if err := writeArtifact(filepath.Join(runDir, a.Name), a.Write); err != nil {
			return "", fmt.Errorf("storage: write %s: %w", a.Name, err)
		}
		meta.Files = append(meta.Files, a.Name)
	}

	err = writeArtifact(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		return ExportJSON(w, meta)
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) allocate(name string, ts time.Time) (string, string, error) {
	if name == "" {
		name = "session"
	}
	base := fmt.Sprintf("%s_%s", sanitize(name), ts.UTC().Format("20060102T150405"))
	runID := base
	for i := 2; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s-%d", base, i)
	}
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}

func writeArtifact(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := s.ReadArtifact(runID, metadataFile)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// ReadArtifact returns the contents of a file saved with a run.
func (s *Store) ReadArtifact(runID, name string) ([]byte, error) {
	if runID == "" || strings.ContainsAny(runID, `/\`) || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("storage: invalid run reference %q/%q", runID, name)
	}
	return os.ReadFile(filepath.Join(s.baseDir, runID, name))
}
