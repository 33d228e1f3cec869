package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "edit0r/internal/core"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "drafts"), nil)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func TestSaveAndLoad(t *testing.T) {
	s := newStore(t)
	d, err := s.SaveDraft("chat_1", `{"model":"gpt-4"}`, core.VendorOpenAI, false)
	require.NoError(t, err)
	_, err = uuid.Parse(d.ID)
	require.NoError(t, err)

	got, err := s.LoadDraft("chat_1")
	require.NoError(t, err)
	assert.Equal(t, d, got)
	assert.Equal(t, core.VendorOpenAI, got.Provider)
}

func TestSaveRefusesSilentOverwrite(t *testing.T) {
	s := newStore(t)
	first, err := s.SaveDraft("cfg", "one", "", false)
	require.NoError(t, err)

	_, err = s.SaveDraft("cfg", "two", "", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExists))

	second, err := s.SaveDraft("cfg", "two", "", true)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	got, err := s.LoadDraft("cfg")
	require.NoError(t, err)
	assert.Equal(t, "two", got.Content)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	var backups int
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".bak") {
			backups++
		}
	}
	assert.Equal(t, 1, backups)
}

func TestListSkipsBackupsAndJunk(t *testing.T) {
	s := newStore(t)
	list, err := s.ListDrafts()
	require.NoError(t, err)
	assert.Empty(t, list, "missing dir is an empty list")

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := s.SaveDraft(name, name, "", false)
		require.NoError(t, err)
	}
	_, err = s.SaveDraft("alpha", "again", "", true)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "broken.json"), []byte("{"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o600))

	list, err = s.ListDrafts()
	require.NoError(t, err)
	var names []string
	for _, d := range list {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestRemove(t *testing.T) {
	s := newStore(t)
	_, err := s.SaveDraft("gone", "x", "", false)
	require.NoError(t, err)
	require.NoError(t, s.RemoveDraft("gone"))

	_, err = s.LoadDraft("gone")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(s.RemoveDraft("gone"), ErrNotFound))
}

func TestNames(t *testing.T) {
	for _, ok := range []string{"a", "A-b_9", strings.Repeat("x", 64)} {
		assert.NoError(t, ValidName(ok), ok)
	}
	for _, bad := range []string{"", "../etc", "a b", "a.json", strings.Repeat("x", 65)} {
		err := ValidName(bad)
		assert.True(t, errors.Is(err, ErrInvalidName), bad)
	}
	s := newStore(t)
	_, err := s.SaveDraft("../x", "", "", false)
	assert.True(t, errors.Is(err, ErrInvalidName))
}

func TestOverwriteCorruptDraft(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "cfg.json"), []byte("{"), 0o600))

	_, err := s.LoadDraft("cfg")
	assert.True(t, errors.Is(err, ErrCorrupt))

	_, err = s.SaveDraft("cfg", "fresh", "", false)
	assert.True(t, errors.Is(err, ErrExists))

	d, err := s.SaveDraft("cfg", "fresh", core.VendorAnthropic, true)
	require.NoError(t, err)
	_, err = uuid.Parse(d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.CreatedAt, d.UpdatedAt)

	got, err := s.LoadDraft("cfg")
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Content)

	matches, err := filepath.Glob(filepath.Join(s.Dir(), "cfg.json.*.bak"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	b, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, "{", string(b))
}
