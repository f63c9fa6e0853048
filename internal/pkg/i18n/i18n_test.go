package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLocale(t *testing.T, root, locale, content string) {
	t.Helper()
	dir := filepath.Join(root, locale)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "messages.yaml"), []byte(content), 0o644))
}

func TestLoadTranslationsAndTranslate(t *testing.T) {
	root := t.TempDir()
	writeLocale(t, root, "en", "MESSAGES:\n  greeting: \"Hello %s\"\n  only.english: \"English only\"\n")
	writeLocale(t, root, "sw", "MESSAGES:\n  greeting: \"Habari %s\"\n")

	require.NoError(t, LoadTranslations(root))

	t.Run("Locale Hit", func(t *testing.T) {
		assert.Equal(t, "Habari %s", Translate("sw", "greeting"))
	})

	t.Run("Falls Back To English", func(t *testing.T) {
		assert.Equal(t, "English only", Translate("sw", "only.english"))
	})

	t.Run("Unknown Locale Falls Back To English", func(t *testing.T) {
		assert.Equal(t, "Hello %s", Translate("fr", "greeting"))
	})

	t.Run("Unknown Key Returns The Key", func(t *testing.T) {
		assert.Equal(t, "missing.key", Translate("en", "missing.key"))
	})
}

func TestLoadTranslationsMissingDir(t *testing.T) {
	assert.Error(t, LoadTranslations(filepath.Join(t.TempDir(), "nope")))
}
