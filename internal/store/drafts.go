package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	core "edit0r/internal/core"
	"edit0r/internal/fsx"
)

var (
	ErrNotFound    = errors.New("draft not found")
	ErrExists      = errors.New("draft already exists")
	ErrInvalidName = errors.New("invalid draft name")
	ErrCorrupt     = errors.New("draft file is corrupt")
)

const fileVersion = 1

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Draft is a named editor buffer saved to disk.
type Draft struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Provider is the vendor override active when the draft was saved, or
	// empty for auto-detection.
	Provider  core.Vendor `json:"provider,omitempty"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type draftFile struct {
	Version int   `json:"version"`
	Draft   Draft `json:"draft"`
}

// Store keeps one JSON file per draft in a directory.
type Store struct {
	dir string
	log *zap.Logger
	now func() time.Time
}

func New(dir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dir: dir, log: log, now: time.Now}
}

// Dir returns the directory drafts are stored in.
func (s *Store) Dir() string { return s.dir }

func ValidName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q (use 1-64 letters, digits, '-' or '_')", ErrInvalidName, name)
	}
	return nil
}

func (s *Store) pathFor(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// SaveDraft writes content under name. An existing draft is replaced only
// when overwrite is set; its previous file is kept as a backup and its ID
// and creation time carry over. A file that no longer decodes counts as
// existing: overwrite backs it up and the new draft starts fresh.
func (s *Store) SaveDraft(name, content string, provider core.Vendor, overwrite bool) (Draft, error) {
	if err := ValidName(name); err != nil {
		return Draft{}, err
	}
	now := s.now().UTC()
	d := Draft{ID: uuid.NewString(), Name: name, Provider: provider, Content: content, CreatedAt: now, UpdatedAt: now}

	path := s.pathFor(name)
	prev, err := s.LoadDraft(name)
	switch {
	case err == nil:
		if !overwrite {
			return Draft{}, fmt.Errorf("%w: %s", ErrExists, name)
		}
		bak, err := fsx.BackupFile(path)
		if err != nil {
			return Draft{}, fmt.Errorf("backup %s: %w", name, err)
		}
		s.log.Debug("backed up draft", zap.String("name", name), zap.String("backup", bak))
		d.ID, d.CreatedAt = prev.ID, prev.CreatedAt
	case errors.Is(err, ErrCorrupt):
		if !overwrite {
			return Draft{}, fmt.Errorf("%w: %s", ErrExists, name)
		}
		bak, err := fsx.BackupFile(path)
		if err != nil {
			return Draft{}, fmt.Errorf("backup %s: %w", name, err)
		}
		s.log.Warn("replacing corrupt draft", zap.String("name", name), zap.String("backup", bak))
	case !errors.Is(err, ErrNotFound):
		return Draft{}, err
	}

	data, err := json.MarshalIndent(&draftFile{Version: fileVersion, Draft: d}, "", "  ")
	if err != nil {
		return Draft{}, err
	}
	if err := fsx.AtomicWrite(path, data, fs.FileMode(0o600)); err != nil {
		return Draft{}, fmt.Errorf("save draft %s: %w", name, err)
	}
	s.log.Info("saved draft", zap.String("name", name), zap.String("id", d.ID), zap.Int("bytes", len(content)))
	return d, nil
}

// LoadDraft reads one draft by name.
func (s *Store) LoadDraft(name string) (Draft, error) {
	if err := ValidName(name); err != nil {
		return Draft{}, err
	}
	b, err := os.ReadFile(s.pathFor(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Draft{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Draft{}, err
	}
	var f draftFile
	if err := json.Unmarshal(b, &f); err != nil {
		return Draft{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	return f.Draft, nil
}

// ListDrafts returns every readable draft ordered by name. A missing
// directory yields an empty list. Unreadable files are skipped and logged.
func (s *Store) ListDrafts() ([]Draft, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []Draft
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		if ValidName(name) != nil {
			continue
		}
		d, err := s.LoadDraft(name)
		if err != nil {
			s.log.Warn("skipping unreadable draft", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// RemoveDraft deletes a draft. Backups are left in place.
func (s *Store) RemoveDraft(name string) error {
	if err := ValidName(name); err != nil {
		return err
	}
	if err := os.Remove(s.pathFor(name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return err
	}
	s.log.Info("removed draft", zap.String("name", name))
	return nil
}
