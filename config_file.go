package datefmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of formatter settings.
type FileConfig struct {
	DefaultLocale   string   `json:"default_locale" yaml:"default_locale" toml:"default_locale" validate:"omitempty,localecode"`
	Timezone        string   `json:"timezone" yaml:"timezone" toml:"timezone" validate:"omitempty,tzname"`
	LocaleDirs      []string `json:"locale_dirs" yaml:"locale_dirs" toml:"locale_dirs" validate:"dive,required,existingdir"`
	EmbeddedLocales *bool    `json:"embedded_locales" yaml:"embedded_locales" toml:"embedded_locales"`
	ParentFallback  *bool    `json:"parent_fallback" yaml:"parent_fallback" toml:"parent_fallback"`

	Fallbacks map[string][]string `json:"fallbacks" yaml:"fallbacks" toml:"fallbacks" validate:"omitempty,dive,keys,required,localecode,endkeys,dive,required,localecode"`
}

// LoadFileConfig reads a YAML, TOML or JSON config chosen by extension and
// validates it.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, path, err)
	}

	cfg, err := ParseFileConfig(filepath.Ext(path), data)
	if err != nil {
		return nil, err
	}

	// relative locale dirs are resolved against the config file location
	base := filepath.Dir(path)
	for i, dir := range cfg.LocaleDirs {
		if dir != "" && !filepath.IsAbs(dir) {
			cfg.LocaleDirs[i] = filepath.Join(base, dir)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseFileConfig decodes data according to ext (".yaml", ".yml", ".toml", ".json").
// The result is not validated.
func ParseFileConfig(ext string, data []byte) (*FileConfig, error) {
	var cfg FileConfig

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: yaml parse error: %v", ErrInvalidConfig, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: toml parse error: %v", ErrInvalidConfig, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: json parse error: %v", ErrInvalidConfig, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config extension %q", ErrInvalidConfig, ext)
	}

	return &cfg, nil
}

func newConfigValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("localecode", func(fl validator.FieldLevel) bool {
		code := normalizeLocale(fl.Field().String())
		if code == "" {
			return true
		}
		_, err := parseLocaleTag(code)
		return err == nil
	})

	_ = v.RegisterValidation("tzname", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		if name == "" {
			return true
		}
		_, err := time.LoadLocation(name)
		return err == nil
	})

	_ = v.RegisterValidation("existingdir", func(fl validator.FieldLevel) bool {
		dir := fl.Field().String()
		info, err := os.Stat(dir)
		return err == nil && info.IsDir()
	})

	return v
}

// Validate checks locale codes, fallback chains, time zone names and directories.
func (c *FileConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	err := newConfigValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msg := fmt.Sprintf("%s failed %q", e.Namespace(), e.Tag())
		if value, ok := e.Value().(string); ok && value != "" {
			msg += fmt.Sprintf(" (got %q)", value)
		}
		messages = append(messages, msg)
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(messages, "; "))
}

// Options converts the file settings into formatter options.
func (c *FileConfig) Options() ([]Option, error) {
	if c == nil {
		return nil, nil
	}

	var opts []Option
	if c.DefaultLocale != "" {
		opts = append(opts, WithDefaultLocale(c.DefaultLocale))
	}
	if c.Timezone != "" {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
		}
		opts = append(opts, WithLocation(loc))
	}
	for _, dir := range c.LocaleDirs {
		opts = append(opts, WithLocaleDir(os.DirFS(dir)))
	}
	if c.EmbeddedLocales == nil || *c.EmbeddedLocales {
		opts = append(opts, WithEmbeddedLocales())
	}
	if c.ParentFallback != nil {
		opts = append(opts, WithParentFallback(*c.ParentFallback))
	}
	for code, chain := range c.Fallbacks {
		opts = append(opts, WithFallback(code, chain...))
	}
	return opts, nil
}

// WithConfigFile loads path and applies its settings. Options given after it win.
func WithConfigFile(path string) Option {
	return func(c *Config) error {
		fileCfg, err := LoadFileConfig(path)
		if err != nil {
			return err
		}
		opts, err := fileCfg.Options()
		if err != nil {
			return err
		}
		for _, opt := range opts {
			if err := opt(c); err != nil {
				return err
			}
		}
		return nil
	}
}
