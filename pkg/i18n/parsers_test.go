package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gridvalidate/pkg/i18n"
)

func TestYAMLParser(t *testing.T) {
	parser := i18n.NewYAMLParser()

	t.Run("parses nested translations", func(t *testing.T) {
		result, err := parser.Parse(context.Background(), enYAML)
		require.NoError(t, err)
		assert.Equal(t, "A value is needed.", result["en"]["validate"].(map[string]any)["notNull"])
	})

	t.Run("rejects scalar language value", func(t *testing.T) {
		_, err := parser.Parse(context.Background(), "en: hello")
		require.ErrorIs(t, err, i18n.ErrInvalidStructure)
	})

	t.Run("rejects malformed language tag", func(t *testing.T) {
		_, err := parser.Parse(context.Background(), "not a tag:\n  hello: Hi\n")
		require.ErrorIs(t, err, i18n.ErrInvalidLanguageTag)
	})

	t.Run("rejects empty document", func(t *testing.T) {
		_, err := parser.Parse(context.Background(), "# nothing\n")
		require.ErrorIs(t, err, i18n.ErrNoLanguages)
	})

	t.Run("rejects invalid yaml", func(t *testing.T) {
		_, err := parser.Parse(context.Background(), "en: [unclosed")
		require.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
	})

	t.Run("respects canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := parser.Parse(ctx, enYAML)
		require.ErrorIs(t, err, i18n.ErrYAMLParsingCancelled)
	})

	t.Run("extensions", func(t *testing.T) {
		assert.True(t, parser.SupportsFileExtension("yaml"))
		assert.True(t, parser.SupportsFileExtension(".YML"))
		assert.False(t, parser.SupportsFileExtension("json"))
	})
}

func TestJSONParser(t *testing.T) {
	parser := i18n.NewJSONParser()

	t.Run("parses translations", func(t *testing.T) {
		result, err := parser.Parse(context.Background(), deJSON)
		require.NoError(t, err)
		assert.Equal(t, "Fehler:", result["de"]["validate"].(map[string]any)["error"])
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		_, err := parser.Parse(context.Background(), "{")
		require.ErrorIs(t, err, i18n.ErrFailedToParseJSON)
	})

	t.Run("same layout rules as yaml", func(t *testing.T) {
		_, err := parser.Parse(context.Background(), `{"de": "Fehler"}`)
		require.ErrorIs(t, err, i18n.ErrInvalidStructure)

		_, err = parser.Parse(context.Background(), `{}`)
		require.ErrorIs(t, err, i18n.ErrNoLanguages)
	})

	t.Run("respects canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := parser.Parse(ctx, deJSON)
		require.ErrorIs(t, err, i18n.ErrJSONParsingCancelled)
	})

	t.Run("extensions", func(t *testing.T) {
		assert.True(t, parser.SupportsFileExtension(".json"))
		assert.False(t, parser.SupportsFileExtension("yaml"))
	})
}

func TestNewParserForFile(t *testing.T) {
	assert.IsType(t, &i18n.YAMLParser{}, i18n.NewParserForFile("en.yaml"))
	assert.IsType(t, &i18n.YAMLParser{}, i18n.NewParserForFile("en.yml"))
	assert.IsType(t, &i18n.JSONParser{}, i18n.NewParserForFile("en.JSON"))
	assert.Nil(t, i18n.NewParserForFile("en.toml"))
	assert.Nil(t, i18n.NewParserForFile("yaml"))
}
