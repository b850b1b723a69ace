package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBody(t *testing.T) {
	t.Run("file only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tag.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"Analytics","type":"ua"}`), 0600))

		body, err := readBody(path, nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Analytics", "type": "ua"}, body)
	})

	t.Run("flags only", func(t *testing.T) {
		body, err := readBody("", map[string]string{"name": "Analytics", "type": ""})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Analytics"}, body)
	})

	t.Run("flags override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tag.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"Old","type":"ua"}`), 0600))

		body, err := readBody(path, map[string]string{"name": "New"})
		require.NoError(t, err)
		assert.Equal(t, "New", body["name"])
		assert.Equal(t, "ua", body["type"])
	})

	t.Run("empty body rejected", func(t *testing.T) {
		_, err := readBody("", map[string]string{"name": ""})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty body")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readBody(filepath.Join(t.TempDir(), "missing.json"), nil)
		require.Error(t, err)
	})

	t.Run("non-object JSON rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "list.json")
		require.NoError(t, os.WriteFile(path, []byte(`["not","an","object"]`), 0600))

		_, err := readBody(path, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a JSON object")
	})
}
