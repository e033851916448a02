package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Parser decodes one translation file. Every top-level key is a language tag
// holding that language's message tree:
//
//	de:
//	  validate:
//	    error: "Fehler:"
type Parser interface {
	Parse(ctx context.Context, content string) (map[string]map[string]any, error)
	// SupportsFileExtension accepts the extension with or without the leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile picks the parser for filename's extension, or nil when
// the format is not supported.
func NewParserForFile(filename string) Parser {
	ext := path.Ext(filename)
	for _, p := range []Parser{NewYAMLParser(), NewJSONParser()} {
		if ext != "" && p.SupportsFileExtension(ext) {
			return p
		}
	}
	return nil
}

// YAMLParser reads .yaml and .yml files.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Parse(ctx context.Context, content string) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrYAMLParsingCancelled, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal([]byte(content), &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return byLanguage(data)
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	return matchExt(ext, "yaml", "yml")
}

// JSONParser reads .json files.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(ctx context.Context, content string) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrJSONParsingCancelled, err)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return byLanguage(data)
}

func (p *JSONParser) SupportsFileExtension(ext string) bool {
	return matchExt(ext, "json")
}

// byLanguage checks the decoded file layout: at least one language, each key
// a well-formed language tag and each value a message tree.
func byLanguage(data map[string]any) (map[string]map[string]any, error) {
	if len(data) == 0 {
		return nil, ErrNoLanguages
	}

	out := make(map[string]map[string]any, len(data))
	for lang, v := range data {
		if _, err := language.Parse(strings.ReplaceAll(lang, "_", "-")); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLanguageTag, lang)
		}
		messages, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q holds %T", ErrInvalidStructure, lang, v)
		}
		out[lang] = messages
	}
	return out, nil
}

func matchExt(ext string, want ...string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return slices.Contains(want, ext)
}
