package kv

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/jourin/internal/logging"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	lite, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = lite.Close() })

	return map[string]Store{
		"sqlite": lite,
		"diskv":  NewDiskvStore(filepath.Join(t.TempDir(), "store")),
		"memory": NewMemoryStore(),
	}
}

func TestStore_Contract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			v, err := s.Get(ctx, "absent")
			require.NoError(t, err)
			assert.Nil(t, v)

			require.NoError(t, s.Set(ctx, "b", []byte("old")))
			require.NoError(t, s.Set(ctx, "b", []byte("new")))
			require.NoError(t, s.Set(ctx, "a", []byte{0x01}))

			v, err = s.Get(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, []byte("new"), v)

			keys, err := s.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, keys)

			require.NoError(t, s.Delete(ctx, "a"))
			require.NoError(t, s.Delete(ctx, "a"))
			v, err = s.Get(ctx, "a")
			require.NoError(t, err)
			assert.Nil(t, v)

			require.NoError(t, s.Clear(ctx))
			keys, err = s.Keys(ctx)
			require.NoError(t, err)
			assert.Empty(t, keys)

			require.NoError(t, s.Set(ctx, "after_clear", []byte("ok")))
			v, err = s.Get(ctx, "after_clear")
			require.NoError(t, err)
			assert.Equal(t, []byte("ok"), v)
		})
	}
}

func TestStore_EmptyValueIsPresent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, "empty", []byte{}))

			v, err := s.Get(ctx, "empty")
			require.NoError(t, err)
			assert.NotNil(t, v)
			assert.Empty(t, v)
		})
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'X'

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)
}

func TestDiskvStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "store")

	require.NoError(t, NewDiskvStore(dir).Set(ctx, "jourin_user_goal", []byte(`"grow"`)))

	v, err := NewDiskvStore(dir).Get(ctx, "jourin_user_goal")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"grow"`), v)
}

func TestDiskvStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewDiskvStore(filepath.Join(t.TempDir(), "store"))
	require.ErrorIs(t, s.Set(ctx, "k", []byte("v")), context.Canceled)
	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteStore_ScanErrorOnNullValue(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE local_storage (key TEXT PRIMARY KEY, value BLOB)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO local_storage (key, value) VALUES (NULL, x'00')`)
	require.NoError(t, err)

	_, err = NewSQLiteStore(db).Keys(context.Background())
	require.Error(t, err)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	type goal struct {
		Text string `json:"text"`
	}

	var g goal
	ok, err := GetJSON(ctx, s, "g", &g)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetJSON(ctx, s, "g", goal{Text: "ship"}))
	ok, err = GetJSON(ctx, s, "g", &g)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ship", g.Text)

	require.NoError(t, s.Set(ctx, "g", []byte("{not json")))
	_, err = GetJSON(ctx, s, "g", &g)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestLoadJSON_HealsCorruptValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "jourin_past_entries", []byte("[{broken")))

	var out []map[string]any
	ok, err := LoadJSON(ctx, s, logging.Discard(), "jourin_past_entries", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	v, err := s.Get(ctx, "jourin_past_entries")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestGetJSON_PartialDecodeLeavesTargetZero(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "k", []byte(`[{"n":1},{"n":"two"}]`)))

	type item struct {
		N int `json:"n"`
	}
	out := []item{{N: 9}}
	ok, err := GetJSON(ctx, s, "k", &out)
	require.ErrorIs(t, err, ErrCorrupt)
	assert.False(t, ok)
	assert.Nil(t, out)
}

func TestLoadJSON_TypeErrorIsTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "titles", []byte(`{"whatWentWell":"Wins","nextStep":7}`)))

	out := map[string]string{}
	ok, err := LoadJSON(ctx, s, logging.Discard(), "titles", &out)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out)
}
