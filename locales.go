package gridvalidate

import (
	"context"
	"embed"

	"github.com/dmitrymomot/gridvalidate/pkg/i18n"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Localizer resolves message keys such as validate.error and validate.minLength.
// It must never return an empty string.
type Localizer interface {
	SafeText(key string) string
}

// NewTranslator loads the bundled validation messages (en, de, fr, es).
func NewTranslator(ctx context.Context, opts ...i18n.Option) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx, i18n.NewFSAdapter(localeFS, "locales"), opts...)
}

func defaultLocalizer() Localizer {
	t, err := NewTranslator(context.Background(), i18n.WithNoLogging())
	if err != nil {
		return keyLocalizer{}
	}
	return t.Localizer(i18n.DefaultLanguage)
}

// keyLocalizer echoes keys back; used only when the bundled locales fail to load.
type keyLocalizer struct{}

func (keyLocalizer) SafeText(key string) string { return key }
