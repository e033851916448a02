// Package i18n provides a small, read-only translation catalogue used to
// localize validation messages.
//
// Translations are loaded once through a TranslationAdapter. FSAdapter reads
// every YAML and JSON file in a directory of any fs.FS (embed.FS, os.DirFS),
// picking YAMLParser or JSONParser by extension. Each file maps language tags
// to message trees, so one file may carry several languages.
//
// Keys are dot-separated paths into nested maps ("validate.minLength") and
// values may contain named "%{name}" placeholders filled from key/value
// arguments passed to T.
//
// Language lookups are tolerant: tags are canonicalised with
// golang.org/x/text/language, a regional tag falls back to its base language
// ("de-AT" -> "de"), and an unknown language falls back to the default one.
//
// # Usage
//
//	adapter := i18n.NewFSAdapter(locales, "locales")
//	translator, err := i18n.NewTranslator(ctx, adapter, i18n.WithDefaultLanguage("en"))
//	if err != nil {
//		return err
//	}
//
//	loc := translator.Localizer("de")
//	header := loc.SafeText("validate.error")
//
// Localizer.SafeText never returns an empty string: a missing key yields the
// key itself, so callers can always render something.
package i18n
