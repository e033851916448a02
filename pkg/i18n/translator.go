package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language is configured or the requested one is unknown.
const DefaultLanguage = "en"

// Translator resolves dot-separated keys against translations loaded once by a
// TranslationAdapter. It is read-only after NewTranslator and safe for
// concurrent use.
type Translator struct {
	translations   map[string]map[string]any
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
}

// NewTranslator creates a Translator and loads translations from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:    DefaultLanguage,
		fallbackToKey:  true,
		missingLogMode: false,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(t)
	}

	if err := t.load(ctx, adapter); err != nil {
		return nil, err
	}

	t.logger.InfoContext(ctx, "Translations loaded", "languages", t.SupportedLanguages())
	return t, nil
}

func (t *Translator) load(ctx context.Context, adapter TranslationAdapter) error {
	translations, err := adapter.Load(ctx)
	if err != nil {
		return err
	}

	if err := t.validateTranslations(translations); err != nil {
		return err
	}

	normalized := make(map[string]map[string]any, len(translations))
	for lang, values := range translations {
		normalized[normalizeTag(lang)] = values
	}

	t.translations = normalized
	return nil
}

func (t *Translator) validateTranslations(trans map[string]map[string]any) error {
	if len(trans) == 0 {
		t.logger.Warn("No translations provided")
		return nil
	}

	for lang, translations := range trans {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if translations == nil {
			return fmt.Errorf("nil translations map for language: %s", lang)
		}
	}
	return nil
}

// SupportedLanguages returns the sorted list of languages that have translations.
func (t *Translator) SupportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// DefaultLanguage returns the language used when a requested one is not available.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// normalizeTag canonicalises a BCP 47 tag ("EN_us" -> "en-US").
// Unparseable tags are lower-cased and returned as is.
func normalizeTag(lang string) string {
	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return strings.ToLower(lang)
	}
	return tag.String()
}

// resolve finds the translation map for lang, trying the exact tag, then its base
// language, then the default language.
func (t *Translator) resolve(lang string) (map[string]any, bool) {
	normalized := normalizeTag(lang)
	if m, ok := t.translations[normalized]; ok {
		return m, true
	}

	if tag, err := language.Parse(normalized); err == nil {
		base, _ := tag.Base()
		if m, ok := t.translations[base.String()]; ok {
			return m, true
		}
	}

	m, ok := t.translations[normalizeTag(t.defaultLang)]
	return m, ok
}

// getTranslation traverses a nested map using dot-separated keys.
// For example, key "validate.minLength" reads m["validate"]["minLength"].
func getTranslation(m map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := m

	for i, part := range parts {
		if i == len(parts)-1 {
			val, ok := current[part]
			return val, ok
		}

		next, ok := current[part]
		if !ok {
			return nil, false
		}

		currentMap, ok := next.(map[string]any)
		if !ok {
			anyMap, isAnyMap := next.(map[any]any)
			if !isAnyMap {
				return nil, false
			}

			currentMap = make(map[string]any, len(anyMap))
			for k, v := range anyMap {
				if ks, ok := k.(string); ok {
					currentMap[ks] = v
				}
			}
		}

		current = currentMap
	}

	return nil, false
}

// HasTranslation checks if a translation exists for the given language and key.
// Base-language and default-language fallbacks apply.
func (t *Translator) HasTranslation(lang, key string) bool {
	langMap, ok := t.resolve(lang)
	if !ok {
		return false
	}

	_, ok = getTranslation(langMap, key)
	return ok
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// sprintf substitutes "%{name}" placeholders from key/value pairs.
// An odd trailing argument is ignored and unknown placeholders are kept.
func sprintf(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}

	params := make(map[string]string, len(args)/2)
	for i := 0; i < len(args)-1; i += 2 {
		params[args[i]] = args[i+1]
	}

	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// T translates key for lang, substituting "%{name}" placeholders from args given as
// key/value pairs.
//
// If the translation is missing and fallbackToKey is enabled, the key itself is returned;
// otherwise the result is an empty string.
//
//	// "validate.minLength": "Value should be at least THRESHOLD characters long."
//	msg := translator.T("en", "validate.minLength")
func (t *Translator) T(lang, key string, args ...string) string {
	langMap, ok := t.resolve(lang)
	if !ok {
		if t.missingLogMode {
			t.logger.Warn("Language not supported", "lang", lang, "key", key)
		}
		return t.fallback(key, args)
	}

	val, ok := getTranslation(langMap, key)
	if !ok {
		if t.missingLogMode {
			t.logger.Warn("Translation not found", "lang", lang, "key", key)
		}
		return t.fallback(key, args)
	}

	switch v := val.(type) {
	case string:
		return sprintf(v, args)
	case fmt.Stringer:
		return sprintf(v.String(), args)
	default:
		if t.missingLogMode {
			t.logger.Warn("Translation is not a string", "lang", lang, "key", key, "type", fmt.Sprintf("%T", v))
		}
		return t.fallback(key, args)
	}
}

func (t *Translator) fallback(key string, args []string) string {
	if t.fallbackToKey {
		return sprintf(key, args)
	}
	return ""
}

// Localizer binds a translator to one language.
type Localizer struct {
	translator *Translator
	lang       string
}

// Localizer returns a view of the translator fixed to lang.
func (t *Translator) Localizer(lang string) *Localizer {
	if lang == "" {
		lang = t.defaultLang
	}
	return &Localizer{translator: t, lang: lang}
}

// Lang returns the language the localizer was created for.
func (l *Localizer) Lang() string {
	return l.lang
}

// SafeText returns the translation for key, never an empty string: a missing key
// yields the key itself regardless of the translator's fallback setting.
func (l *Localizer) SafeText(key string) string {
	if s := l.translator.T(l.lang, key); s != "" {
		return s
	}
	return key
}
