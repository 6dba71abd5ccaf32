package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/export"
	"github.com/san-kum/attractor/internal/palette"
)

const (
	metadataFile = "metadata.json"
	paramsFile   = "params.json"
	imageFile    = "image.png"
	thumbFile    = "thumb.png"
)

var ErrRunNotFound = errors.New("storage: run not found")

// Store keeps one directory per saved render under baseDir.
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

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Attractor  string             `json:"attractor"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Iterations int                `json:"iterations"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Elapsed    time.Duration      `json:"elapsed_ns"`
	Palette    palette.Palette    `json:"palette"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
	Thumbnail  bool               `json:"thumbnail"`
}

// Run is what Save persists: the attractor parameters, the rendered image
// and an optional thumbnail next to the metadata.
type Run struct {
	Meta      RunMetadata
	Attractor attractor.Attractor
	Image     image.Image
	Thumb     image.Image
}

// Save writes run into a fresh directory and returns its ID. ID, Name,
// Timestamp and Thumbnail in the metadata are filled in by the store.
func (s *Store) Save(run Run) (string, error) {
	meta := run.Meta
	meta.Timestamp = s.now()
	meta.Name = run.Attractor.Name()
	if meta.Attractor == "" {
		meta.Attractor, _ = attractor.KeyFor(meta.Name)
	}
	meta.Thumbnail = run.Thumb != nil

	runID, runDir, err := s.mkdir(meta.Attractor, meta.Timestamp)
	if err != nil {
		return "", err
	}
	meta.ID = runID

	if err := writeRun(runDir, meta, run); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

// writeRun fills runDir. metadata.json goes last, so List never reports a
// run whose payload is incomplete.
func writeRun(runDir string, meta RunMetadata, run Run) error {
	if err := SaveParams(filepath.Join(runDir, paramsFile), run.Attractor); err != nil {
		return err
	}
	if run.Image != nil {
		if err := export.WritePNG(filepath.Join(runDir, imageFile), run.Image); err != nil {
			return err
		}
	}
	if run.Thumb != nil {
		if err := export.WritePNG(filepath.Join(runDir, thumbFile), run.Thumb); err != nil {
			return err
		}
	}
	return writeJSON(filepath.Join(runDir, metadataFile), meta)
}

// mkdir claims <key>_<unix> or, when taken, <key>_<unix>_<n>.
func (s *Store) mkdir(key string, ts time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", key, ts.Unix())
	runID := base
	for n := 2; ; n++ {
		dir := s.Dir(runID)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return runID, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns every readable run, oldest first.
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
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadParams restores the attractor a run was rendered from.
func (s *Store) LoadParams(runID string) (attractor.Attractor, error) {
	path := filepath.Join(s.Dir(runID), paramsFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return LoadParams(path)
}

func (s *Store) ImagePath(runID string) string {
	return filepath.Join(s.Dir(runID), imageFile)
}
