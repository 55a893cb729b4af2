package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(nested)
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not toml {{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("github.token", "ghp_x"))
	require.NoError(t, store.Set("github.max_pages", 5))
	require.NoError(t, store.Set("github.requests_per_second", 0.5))
	require.NoError(t, store.Set("email.enabled", true))
	require.NoError(t, store.Set("email.recipients", []string{"a@x.com", "b@x.com"}))

	assert.Equal(t, "ghp_x", store.GetString("github.token"))
	assert.Equal(t, 5, store.GetInt("github.max_pages"))
	assert.InDelta(t, 0.5, store.GetFloat("github.requests_per_second"), 1e-9)
	assert.True(t, store.GetBool("email.enabled"))
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, store.GetStringSlice("email.recipients"))

	// Wrong types and missing keys read as zero values.
	assert.Equal(t, "", store.GetString("github.max_pages"))
	assert.Equal(t, 0, store.GetInt("github.token"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_PersistsAsTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("github.token", "ghp_x"))
	require.NoError(t, store.Set("github.max_pages", 5))
	require.NoError(t, store.Set("scheduler.interval", "6h0m0s"))
	require.NoError(t, store.Set("email.recipients", []string{"ops@example.com"}))
	require.NoError(t, store.Set("report.language", "Chinese"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[github]")
	assert.Contains(t, string(raw), "[scheduler]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "ghp_x", reloaded.GetString("github.token"))
	assert.Equal(t, 5, reloaded.GetInt("github.max_pages"))
	assert.Equal(t, "6h0m0s", reloaded.GetString("scheduler.interval"))
	assert.Equal(t, []string{"ops@example.com"}, reloaded.GetStringSlice("email.recipients"))
	assert.Equal(t, []string{
		"email.recipients", "github.max_pages", "github.token", "report.language", "scheduler.interval",
	}, reloaded.Keys())
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[github]
token = "ghp_file"
requests_per_second = 2

[llm]
provider = "ollama"
temperature = 0.2
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "ghp_file", store.GetString("github.token"))
	assert.InDelta(t, 2.0, store.GetFloat("github.requests_per_second"), 1e-9)
	assert.Equal(t, "ollama", store.GetString("llm.provider"))
	assert.InDelta(t, 0.2, store.GetFloat("llm.temperature"), 1e-9)
}

func TestConfigStore_Unset(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("web.addr", ":9090"))

	require.NoError(t, store.Unset("web.addr"))
	require.NoError(t, store.Unset("web.addr"), "unsetting an absent key is not an error")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := reloaded.Get("web.addr")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("github.token", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyOrCommentOnlyFile(t *testing.T) {
	for name, content := range map[string]string{"empty": "", "comment": "# nothing\n\n"} {
		t.Run(name, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

			store, err := NewConfigStore(tmpDir)
			require.NoError(t, err)
			assert.Empty(t, store.Keys())
		})
	}
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("a.b", "c"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("a.d", "e"))
}

func TestConfigStore_Set_UnmarshallableValue(t *testing.T) {
	store := newTestStore(t)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "section.key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"top":     1,
		"a.b":     "x",
		"a.c.d":   true,
		"top.sub": "shadowed",
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{
		"top": 1,
		"a": map[string]any{
			"b": "x",
			"c": map[string]any{"d": true},
		},
	}, nested)
	assert.Equal(t, map[string]any{"top": 1, "a.b": "x", "a.c.d": true}, flattenMap(nested, ""))
}

func TestDefaultDirs(t *testing.T) {
	assert.Equal(t, "sentinel", filepath.Base(DefaultConfigDir()))
	assert.Equal(t, "sentinel", filepath.Base(DefaultDataDir()))
	assert.Equal(t, filepath.Join(DefaultDataDir(), "reports"), DefaultExportDir())
	assert.Equal(t, filepath.Join("/cfg", "prompts"), DefaultPromptDir("/cfg"))
}
