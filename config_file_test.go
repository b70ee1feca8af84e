package datefmt

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileConfigFormats(t *testing.T) {
	t.Parallel()

	localesDir, err := filepath.Abs(filepath.Join("testdata", "locales"))
	require.NoError(t, err)

	tests := []struct {
		file     string
		locale   string
		timezone string
		dirs     []string
	}{
		{file: "datefmt.yaml", locale: "pt", timezone: "America/Sao_Paulo", dirs: []string{localesDir}},
		{file: "datefmt.toml", locale: "it", timezone: "Europe/Rome", dirs: []string{localesDir}},
		{file: "datefmt.json", locale: "ru", timezone: "UTC"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			cfg, err := LoadFileConfig(filepath.Join("testdata", "config", tt.file))
			require.NoError(t, err)
			assert.Equal(t, tt.locale, cfg.DefaultLocale)
			assert.Equal(t, tt.timezone, cfg.Timezone)

			dirs := make([]string, 0, len(cfg.LocaleDirs))
			for _, dir := range cfg.LocaleDirs {
				abs, err := filepath.Abs(dir)
				require.NoError(t, err)
				dirs = append(dirs, abs)
			}
			if len(tt.dirs) == 0 {
				assert.Empty(t, dirs)
			} else {
				assert.Equal(t, tt.dirs, dirs)
			}
		})
	}
}

func TestLoadFileConfigTOMLFlags(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFileConfig(filepath.Join("testdata", "config", "datefmt.toml"))
	require.NoError(t, err)
	require.NotNil(t, cfg.ParentFallback)
	assert.False(t, *cfg.ParentFallback)
	assert.Nil(t, cfg.EmbeddedLocales)
}

func TestLoadFileConfigValidation(t *testing.T) {
	t.Parallel()

	_, err := LoadFileConfig(filepath.Join("testdata", "config", "invalid.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "DefaultLocale")
	assert.Contains(t, err.Error(), "Timezone")
	assert.Contains(t, err.Error(), "LocaleDirs[0]")
	assert.Contains(t, err.Error(), "Fallbacks[bad code!]")
}

func TestLoadFileConfigErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadFileConfig(filepath.Join("testdata", "config", "missing.yaml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadFileConfig(filepath.Join("testdata", "config", "malformed.toml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseFileConfig(".ini", []byte("x=1"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseFileConfig(".json", []byte("{"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFileConfigValidateNil(t *testing.T) {
	t.Parallel()

	var cfg *FileConfig
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Nil(t, opts)
}

func TestWithConfigFileBuildsFormatter(t *testing.T) {
	t.Parallel()

	f, err := New(WithConfigFile(filepath.Join("testdata", "config", "datefmt.yaml")), WithClock(fixedClock))
	require.NoError(t, err)

	assert.Equal(t, "pt", f.Lang(""))
	assert.Equal(t, "janeiro 2030, 00:04 -03:00", f.FormatNow("MMMM YYYY, HH:mm Z"))

	assert.Equal(t, "ru", f.Lang("ru"))
	assert.Equal(t, "it", f.Lang("it"))

	assert.Equal(t, "gl", f.Lang("gl"))
	assert.Equal(t, "janeiro", f.Locale().Months[0])
}

func TestWithConfigFileLaterOptionsWin(t *testing.T) {
	t.Parallel()

	f, err := New(
		WithConfigFile(filepath.Join("testdata", "config", "datefmt.json")),
		WithDefaultLocale("de"),
		WithLocation(time.UTC),
	)
	require.NoError(t, err)
	assert.Equal(t, "de", f.Lang(""))
}

func TestWithConfigFileDisabledEmbedded(t *testing.T) {
	t.Parallel()

	cfg, err := ParseFileConfig(".yaml", []byte("embedded_locales: false\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	opts, err := cfg.Options()
	require.NoError(t, err)

	f, err := New(opts...)
	require.NoError(t, err)
	assert.Equal(t, "en", f.Lang("ru"))
}

func TestWithConfigFileInvalid(t *testing.T) {
	t.Parallel()

	_, err := New(WithConfigFile(filepath.Join("testdata", "config", "invalid.yaml")))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
