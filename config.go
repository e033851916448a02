package gridvalidate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/gridvalidate/pkg/i18n"
	"github.com/dmitrymomot/gridvalidate/pkg/logger"
)

// Config is the environment configuration of a Service, loaded with pkg/config:
//
//	var cfg gridvalidate.Config
//	err := config.Load(&cfg, config.WithPrefix("GRIDVALIDATE_"))
type Config struct {
	// Language of the validation messages.
	Language string `env:"LANGUAGE" envDefault:"en"`
	// StrictValidatorTypes rejects unknown validator types in column configurations.
	StrictValidatorTypes bool `env:"STRICT_VALIDATOR_TYPES" envDefault:"true"`
	// AsyncTimeout bounds a single validator; zero disables it.
	AsyncTimeout time.Duration `env:"ASYNC_TIMEOUT" envDefault:"0s"`
	// TranslationsDir holds extra YAML or JSON message files overriding the bundled ones.
	TranslationsDir string `env:"TRANSLATIONS_DIR"`
	// Environment selects the logging preset: development logs text from debug
	// level, staging and production log JSON from info level.
	Environment string `env:"ENVIRONMENT" envDefault:"production"`
	// LogLevel and LogFormat override the preset when set.
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
}

const serviceName = "gridvalidate"

// LogOptions returns the logger options described by the config.
func (c Config) LogOptions() ([]logger.Option, error) {
	opts := []logger.Option{
		logger.WithEnvironment(c.Environment, serviceName),
		logger.WithAttr(slog.String("language", c.Language)),
	}
	if c.LogLevel != "" {
		level, err := logger.ParseLevel(c.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	if c.LogFormat != "" {
		format, err := logger.ParseFormat(c.LogFormat)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithFormat(format))
	}
	return opts, nil
}

// Logger builds the logger described by the config, writing to stderr.
func (c Config) Logger() (*slog.Logger, error) {
	opts, err := c.LogOptions()
	if err != nil {
		return nil, err
	}
	return logger.New(append(opts, logger.WithOutput(os.Stderr))...), nil
}

// NewServiceFromConfig builds a Service with the configured logger, messages and
// validator behaviour. reg may be nil to disable metrics. Extra options are
// applied last.
func NewServiceFromConfig(ctx context.Context, cfg Config, reg prometheus.Registerer, opts ...Option) (*Service, error) {
	log, err := cfg.Logger()
	if err != nil {
		return nil, err
	}

	translator, err := NewTranslator(ctx, i18n.WithLogger(log), i18n.WithDefaultLanguage(i18n.DefaultLanguage))
	if err != nil {
		return nil, fmt.Errorf("load bundled messages: %w", err)
	}

	localizer := Localizer(translator.Localizer(cfg.Language))
	if cfg.TranslationsDir != "" {
		localizer, err = overlayLocalizer(ctx, cfg, log, localizer)
		if err != nil {
			return nil, err
		}
	}

	base := []Option{
		WithLogger(log),
		WithLocalizer(localizer),
		WithStrictValidatorTypes(cfg.StrictValidatorTypes),
		WithAsyncTimeout(cfg.AsyncTimeout),
	}
	if reg != nil {
		base = append(base, WithMetrics(NewMetrics(reg)))
	}

	return NewService(append(base, opts...)...), nil
}

// overlayLocalizer loads every YAML and JSON file of cfg.TranslationsDir and
// falls back to next for keys the directory does not define.
func overlayLocalizer(ctx context.Context, cfg Config, log *slog.Logger, next Localizer) (Localizer, error) {
	t, err := i18n.NewTranslator(ctx, i18n.NewDirectoryAdapter(cfg.TranslationsDir),
		i18n.WithLogger(log), i18n.WithFallbackToKey(false))
	if err != nil {
		return nil, fmt.Errorf("load translations from %s: %w", cfg.TranslationsDir, err)
	}
	if !covers(t.SupportedLanguages(), cfg.Language) {
		log.DebugContext(ctx, "translations directory lacks the configured language", slog.String("language", cfg.Language))
		return next, nil
	}
	return &overlay{t: t, lang: cfg.Language, next: next}, nil
}

// covers reports whether langs contains lang or its base language, so the
// overlay never answers with its default-language fallback.
func covers(langs []string, lang string) bool {
	want, err := language.Parse(lang)
	if err != nil {
		return slices.Contains(langs, lang)
	}
	wantBase, _ := want.Base()

	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			continue
		}
		if base, _ := tag.Base(); base == wantBase {
			return true
		}
	}
	return false
}

type overlay struct {
	t    *i18n.Translator
	lang string
	next Localizer
}

func (o *overlay) SafeText(key string) string {
	if o.t.HasTranslation(o.lang, key) {
		if s := o.t.T(o.lang, key); s != "" {
			return s
		}
	}
	return o.next.SafeText(key)
}
