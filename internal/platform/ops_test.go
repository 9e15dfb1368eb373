package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scrawl/internal/platform"
	"github.com/aretw0/scrawl/pkg/adapters/fs"
	"github.com/aretw0/scrawl/pkg/adapters/memory"
	"github.com/aretw0/scrawl/pkg/adapters/sqlite"
	"github.com/aretw0/scrawl/pkg/core"
)

func TestInit(t *testing.T) {
	t.Run("fs creates the parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "notes.json")

		slot, err := platform.Init(path, platform.WithForceTemp(true))
		require.NoError(t, err)

		fsSlot, ok := slot.(*fs.Slot)
		require.True(t, ok, "expected fs slot, got %T", slot)
		assert.Equal(t, path, fsSlot.Path)

		info, err := os.Stat(filepath.Dir(path))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("fs with MustExist fails on a missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "notes.json")
		_, err := platform.Init(path, platform.WithMustExist(true), platform.WithForceTemp(true))
		assert.Error(t, err)
	})

	t.Run("sqlite", func(t *testing.T) {
		slot, err := platform.Init(filepath.Join(t.TempDir(), "notes.db"), platform.WithAdapter("sqlite"))
		require.NoError(t, err)
		s, ok := slot.(*sqlite.Slot)
		require.True(t, ok)
		require.NoError(t, s.Close())
	})

	t.Run("memory", func(t *testing.T) {
		slot, err := platform.Init("", platform.WithAdapter("memory"))
		require.NoError(t, err)
		assert.IsType(t, &memory.Slot{}, slot)
	})

	t.Run("unknown adapter", func(t *testing.T) {
		_, err := platform.Init("x", platform.WithAdapter("s3"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown adapter")
	})

	t.Run("injected slot wins", func(t *testing.T) {
		injected := memory.NewSlot()
		slot, err := platform.Init("ignored", platform.WithAdapter("s3"), platform.WithSlot(injected))
		require.NoError(t, err)
		assert.Same(t, injected, slot)
	})
}

func TestNew_PicksCodecFromExtension(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, name := range []string{"notes.json", "notes.yaml", "notes.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			store, err := platform.New(path)
			require.NoError(t, err)

			_, err = store.Add(ctx, "Title", "Body")
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			if strings.HasSuffix(name, ".json") {
				assert.True(t, strings.HasPrefix(string(data), "["), "json array expected, got %q", data)
			} else {
				assert.Contains(t, string(data), "title: Title")
			}

			reopened, err := platform.New(path)
			require.NoError(t, err)
			assert.Equal(t, store.Notes()[0].ID, reopened.Notes()[0].ID)
		})
	}
}

func TestNew_StoreOptions(t *testing.T) {
	when := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	store, err := platform.New("",
		platform.WithAdapter("memory"),
		platform.WithClock(func() time.Time { return when }),
		platform.WithIDGenerator(func() (string, error) { return "fixed", nil }),
		platform.WithEventBuffer(1),
	)
	require.NoError(t, err)

	n, err := store.Add(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "fixed", n.ID)
	assert.True(t, n.UpdatedAt.Equal(when))
	assert.Equal(t, 1, store.State().(core.StoreState).EventBufferSize)
}

func TestNew_ReadOnly(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.json")

	rw, err := platform.New(path)
	require.NoError(t, err)
	_, err = rw.Add(ctx, "keep", "")
	require.NoError(t, err)

	ro, err := platform.New(path, platform.WithReadOnly(true))
	require.NoError(t, err)
	assert.Equal(t, 1, ro.Len())

	_, err = ro.Add(ctx, "nope", "")
	require.ErrorIs(t, err, core.ErrReadOnly)
	assert.Equal(t, 1, ro.Len())
}

func TestNew_SQLiteKeys(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "notes.db")

	work, err := platform.New(dsn, platform.WithAdapter("sqlite"), platform.WithKey("work"))
	require.NoError(t, err)
	_, err = work.Add(ctx, "standup", "")
	require.NoError(t, err)
	require.NoError(t, work.Close())

	home, err := platform.New(dsn, platform.WithAdapter("sqlite"), platform.WithKey("home"))
	require.NoError(t, err)
	defer home.Close()
	assert.Zero(t, home.Len())
}

func TestCodecFor(t *testing.T) {
	assert.IsType(t, core.JSONCodec{}, platform.CodecFor("notes.json"))
	assert.IsType(t, core.JSONCodec{}, platform.CodecFor("notes"))
	assert.IsType(t, core.YAMLCodec{}, platform.CodecFor("notes.YAML"))
	assert.IsType(t, core.YAMLCodec{}, platform.CodecFor("/a/b/notes.yml"))
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "notes.json", platform.ResolvePath("", false))
	assert.Equal(t, "x/y.json", platform.ResolvePath("x/y.json", false))

	sandbox := filepath.Join(os.TempDir(), "scrawl-dev")
	assert.Equal(t, filepath.Join(sandbox, "y.json"), platform.ResolvePath("x/y.json", true))
	assert.Equal(t, filepath.Join(sandbox, "notes.json"), platform.ResolvePath("", true))

	inside := filepath.Join(t.TempDir(), "n.json")
	assert.Equal(t, inside, platform.ResolvePath(inside, true))
}

func TestIsDevRun(t *testing.T) {
	assert.True(t, platform.IsDevRun(), "test binaries count as dev runs")
}
