package forecast

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
)

const (
	// LatestName always mirrors the most recent forecast.
	LatestName = "latest.json"
	// snapshotLayout names the per-run file as DDMMYYYYHH.
	snapshotLayout = "0201200615"
)

// Store persists forecasts under a directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string { return s.dir }

// SnapshotName returns the per-run file name for now.
func SnapshotName(now time.Time) string {
	return now.UTC().Format(snapshotLayout) + ".json"
}

// Save stamps f with the UTC date of now and writes it to the snapshot file and to
// latest.json. Both files hold identical bytes. It returns the snapshot and latest paths.
func (s *Store) Save(f *Forecast, now time.Time) (string, string, error) {
	f.Date = now.UTC().Format(DateLayout)
	if err := f.Validate(); err != nil {
		return "", "", err
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("encode forecast: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir %s: %w", s.dir, err)
	}

	snapshot := filepath.Join(s.dir, SnapshotName(now))
	if err := writeFileAtomic(snapshot, data); err != nil {
		return "", "", err
	}
	latest := filepath.Join(s.dir, LatestName)
	if err := writeFileAtomic(latest, data); err != nil {
		return "", "", err
	}
	return snapshot, latest, nil
}

// Latest reads back latest.json.
func (s *Store) Latest() (*Forecast, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, LatestName))
	if err != nil {
		return nil, fmt.Errorf("read latest forecast: %w", err)
	}
	var f Forecast
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode latest forecast: %w", err)
	}
	return &f, nil
}

// writeFileAtomic stages data in a temp file next to path and renames it into
// place, so a concurrent reader sees either the old or the new content.
func writeFileAtomic(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, 0o644, renameio.WithTempDir(filepath.Dir(path))); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
