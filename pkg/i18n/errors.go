package i18n

import "errors"

var (
	ErrNilAdapter    = errors.New("i18n: adapter is nil")
	ErrEmptyLanguage = errors.New("i18n: empty language code found")

	// JSON operations
	ErrJSONParsingCancelled = errors.New("json parsing cancelled")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON content")

	// YAML operations
	ErrYAMLParsingCancelled = errors.New("yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")

	// File layout
	ErrNoLanguages        = errors.New("translation file defines no languages")
	ErrInvalidLanguageTag = errors.New("invalid language tag")
	ErrInvalidStructure   = errors.New("language value is not a map of messages")

	// File operations
	ErrFailedToReadFile  = errors.New("failed to read translation file")
	ErrFailedToParseFile = errors.New("failed to parse translation file")
	ErrEmptyFile         = errors.New("translation file is empty")

	// Directory and fs.FS operations
	ErrFailedToAccessDirectory   = errors.New("failed to access directory")
	ErrFailedToReadDirectory     = errors.New("failed to read directory")
	ErrNoTranslationFiles        = errors.New("no valid translation files found")
	ErrLoadingDirectoryCancelled = errors.New("loading from directory cancelled")
)
