package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// TranslationAdapter loads translations keyed by language.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// FSAdapter loads every YAML and JSON file in one directory of an fs.FS.
// Files of other formats are ignored. Messages of the same language found in
// several files are merged key by key in directory order.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

// NewFSAdapter returns nil if fsys is nil. An empty dir means the root of fsys.
func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	if fsys == nil {
		return nil
	}
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir}
}

// NewDirectoryAdapter is NewFSAdapter over a directory on disk.
// It returns nil for an empty dir.
func NewDirectoryAdapter(dir string) *FSAdapter {
	if dir == "" {
		return nil
	}
	return NewFSAdapter(os.DirFS(dir), ".")
}

// Load fails only when no file could be loaded; the errors of skipped files
// are joined into that error.
func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingDirectoryCancelled, err)
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Join(ErrFailedToAccessDirectory, err)
		}
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}

	all := make(map[string]map[string]any)
	var skipped []error
	loaded := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parser := NewParserForFile(entry.Name())
		if parser == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingDirectoryCancelled, err)
		}

		name := path.Join(a.dir, entry.Name())
		translations, err := a.loadFile(ctx, parser, name)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}

		for lang, messages := range translations {
			if all[lang] == nil {
				all[lang] = make(map[string]any)
			}
			mergeMessages(all[lang], messages)
		}
		loaded++
	}

	if loaded == 0 {
		return nil, errors.Join(append([]error{fmt.Errorf("%w in '%s'", ErrNoTranslationFiles, a.dir)}, skipped...)...)
	}
	return all, nil
}

func (a *FSAdapter) loadFile(ctx context.Context, parser Parser, name string) (map[string]map[string]any, error) {
	content, err := fs.ReadFile(a.fsys, name)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: '%s'", ErrEmptyFile, name)
	}

	translations, err := parser.Parse(ctx, string(content))
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", name, err))
	}
	return translations, nil
}

// mergeMessages copies src into dst, descending into message trees present in both.
func mergeMessages(dst, src map[string]any) {
	for k, v := range src {
		if srcTree, ok := v.(map[string]any); ok {
			if dstTree, ok := dst[k].(map[string]any); ok {
				mergeMessages(dstTree, srcTree)
				continue
			}
		}
		dst[k] = v
	}
}
