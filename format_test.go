package gridvalidate_test

import (
	"context"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gridvalidate"
	"github.com/dmitrymomot/gridvalidate/pkg/i18n"
)

func TestGetFormattedErrors(t *testing.T) {
	t.Parallel()

	svc := gridvalidate.NewService()
	col := newColumn(t, svc, "name", map[string]any{"notNull": true, "minLength": 3})
	row := gridvalidate.NewRow(nil)

	t.Run("nothing when valid", func(t *testing.T) {
		html, ok := svc.GetFormattedErrors(row, col)
		assert.False(t, ok)
		assert.Empty(t, html)

		title, ok := svc.GetTitleFormattedErrors(row, col)
		assert.False(t, ok)
		assert.Empty(t, title)
	})

	_, err := svc.RunValidators(context.Background(), row, col, "", nil)
	require.NoError(t, err)

	t.Run("html in sorted type order", func(t *testing.T) {
		html, ok := svc.GetFormattedErrors(row, col)
		require.True(t, ok)
		assert.Equal(t, template.HTML(
			"<p><b>Error:</b></p>"+
				"Value should be at least 3 characters long.<br/>"+
				"A value is needed.<br/>",
		), html)
	})

	t.Run("title is plain text", func(t *testing.T) {
		title, ok := svc.GetTitleFormattedErrors(row, col)
		require.True(t, ok)
		assert.Equal(t, "Error:\nValue should be at least 3 characters long.\nA value is needed.\n", title)
	})

	t.Run("templ component", func(t *testing.T) {
		var b strings.Builder
		require.NoError(t, svc.ErrorsComponent(row, col).Render(context.Background(), &b))

		html, _ := svc.GetFormattedErrors(row, col)
		assert.Equal(t, string(html), b.String())

		b.Reset()
		require.NoError(t, svc.ErrorsComponent(gridvalidate.NewRow(nil), col).Render(context.Background(), &b))
		assert.Empty(t, b.String())
	})

	t.Run("error without registered validator prints its type", func(t *testing.T) {
		other := gridvalidate.NewRow(nil)
		svc.SetError(other, col, "external")

		title, ok := svc.GetTitleFormattedErrors(other, col)
		require.True(t, ok)
		assert.Equal(t, "Error:\nexternal\n", title)
	})
}

func TestGetFormattedErrors_Localized(t *testing.T) {
	t.Parallel()

	translator, err := gridvalidate.NewTranslator(context.Background(), i18n.WithNoLogging())
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "en", "es", "fr"}, translator.SupportedLanguages())

	tests := []struct {
		lang string
		want string
	}{
		{"de", "Fehler:\nDer Wert sollte maximal 4 Zeichen lang sein.\n"},
		{"de-AT", "Fehler:\nDer Wert sollte maximal 4 Zeichen lang sein.\n"},
		{"es", "Error:\nEl valor debe tener como máximo 4 caracteres.\n"},
		{"fr", "Erreur :\nLa valeur doit contenir au plus 4 caractères.\n"},
		{"ja", "Error:\nValue should be at most 4 characters long.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			svc := gridvalidate.NewService(gridvalidate.WithLocalizer(translator.Localizer(tt.lang)))
			col := newColumn(t, svc, "code", map[string]any{"maxLength": 4})
			row := gridvalidate.NewRow(nil)

			_, err := svc.RunValidators(context.Background(), row, col, "12345", nil)
			require.NoError(t, err)

			title, ok := svc.GetTitleFormattedErrors(row, col)
			require.True(t, ok)
			assert.Equal(t, tt.want, title)
		})
	}
}

type stubLocalizer map[string]string

func (s stubLocalizer) SafeText(key string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return key
}

func TestMessagePrinter(t *testing.T) {
	t.Parallel()

	svc := gridvalidate.NewService(gridvalidate.WithLocalizer(stubLocalizer{
		"validate.minLength": "at least THRESHOLD (THRESHOLD)",
	}))

	assert.Equal(t, "at least 5 (5)", svc.MessagePrinter("minLength")(5))
	assert.Equal(t, "validate.custom", svc.MessagePrinter("custom")(1))
}
