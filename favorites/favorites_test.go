package favorites

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/M0ricette/lego/storage"
)

type memoryKV struct {
	values map[string][]byte
	writes int
	getErr error
	setErr error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string][]byte{}}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.writes++
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryKV) Close() error { return nil }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadDefaultsToEmpty(t *testing.T) {
	tests := []struct {
		name string
		kv   *memoryKV
	}{
		{name: "absent", kv: newMemoryKV()},
		{name: "unparseable", kv: &memoryKV{values: map[string][]byte{Key: []byte("{oops")}}},
		{name: "read error", kv: &memoryKV{values: map[string][]byte{}, getErr: errors.New("disk gone")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := Load(context.Background(), tc.kv, quietLogger())
			require.Equal(t, 0, store.Len())
			require.False(t, store.IsFavorite("anything"))
		})
	}
}

func TestLoadReadsSlot(t *testing.T) {
	kv := newMemoryKV()
	kv.values[Key] = []byte(`["u-2","u-1","u-2",""]`)

	store := Load(context.Background(), kv, quietLogger())
	require.Equal(t, []string{"u-1", "u-2"}, store.IDs())
	require.True(t, store.IsFavorite("u-1"))
	require.Equal(t, 0, kv.writes, "loading must not rewrite the slot")
}

func TestTogglePersistsEveryChange(t *testing.T) {
	kv := newMemoryKV()
	store := Load(context.Background(), kv, quietLogger())

	member, err := store.Toggle(context.Background(), "u-1")
	require.NoError(t, err)
	require.True(t, member)
	require.JSONEq(t, `["u-1"]`, string(kv.values[Key]))

	member, err = store.Toggle(context.Background(), "u-2")
	require.NoError(t, err)
	require.True(t, member)
	require.JSONEq(t, `["u-1","u-2"]`, string(kv.values[Key]))
	require.Equal(t, 2, kv.writes)
}

func TestToggleTwiceRestoresMembershipAndPersistedValue(t *testing.T) {
	kv := newMemoryKV()
	store := Load(context.Background(), kv, quietLogger())
	_, err := store.Toggle(context.Background(), "b")
	require.NoError(t, err)
	_, err = store.Toggle(context.Background(), "a")
	require.NoError(t, err)

	before := string(kv.values[Key])
	membersBefore := store.IDs()

	for _, id := range []string{"a", "a", "c", "c"} {
		_, err := store.Toggle(context.Background(), id)
		require.NoError(t, err)
	}

	require.Equal(t, membersBefore, store.IDs())
	require.Equal(t, before, string(kv.values[Key]))
}

func TestToggleRejectsEmptyID(t *testing.T) {
	store := Load(context.Background(), newMemoryKV(), quietLogger())
	_, err := store.Toggle(context.Background(), "  ")
	require.Error(t, err)
}

func TestToggleKeepsMembershipWhenPersistFails(t *testing.T) {
	kv := newMemoryKV()
	kv.setErr = errors.New("read-only")
	store := Load(context.Background(), kv, quietLogger())

	member, err := store.Toggle(context.Background(), "u-1")
	require.Error(t, err)
	require.True(t, member)
	require.True(t, store.IsFavorite("u-1"))
}

func TestStoreSurvivesReloadFromFile(t *testing.T) {
	kv, err := storage.NewFileKV(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	store := Load(context.Background(), kv, quietLogger())
	_, err = store.Toggle(context.Background(), "u-9")
	require.NoError(t, err)

	reloaded := Load(context.Background(), kv, quietLogger())
	require.True(t, reloaded.IsFavorite("u-9"))
}

func TestNilStore(t *testing.T) {
	var store *Store
	require.False(t, store.IsFavorite("x"))
	require.Equal(t, 0, store.Len())
	require.Nil(t, store.IDs())
}
