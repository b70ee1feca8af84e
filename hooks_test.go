package datefmt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHook struct {
	events []string
}

func (h *recordingHook) BeforeFormat(ctx *FormatHookContext) {
	h.events = append(h.events, "before:"+ctx.Pattern)
	ctx.SetMetadata("started", true)
}

func (h *recordingHook) AfterFormat(ctx *FormatHookContext) {
	started, _ := ctx.MetadataValue("started")
	if ctx.Error != nil {
		h.events = append(h.events, "error")
		return
	}
	if started == true {
		h.events = append(h.events, "after:"+ctx.Result)
	}
}

func TestHooksObserveFormat(t *testing.T) {
	t.Parallel()

	hook := &recordingHook{}
	f := newTestFormatter(t, WithHooks(hook, nil))

	instant := time.Date(2023, 8, 24, 0, 0, 0, 0, time.UTC)
	_, err := f.Format("YYYY", At(instant))
	require.NoError(t, err)

	_, err = f.Format("YYYY", ValueOf(true))
	require.Error(t, err)

	assert.Equal(t, []string{"before:YYYY", "after:2023", "before:YYYY", "error"}, hook.events)
}

func TestHooksCanRewrite(t *testing.T) {
	t.Parallel()

	f := newTestFormatter(t, WithHooks(
		FormatHookFuncs{
			Before: func(ctx *FormatHookContext) {
				ctx.Pattern = strings.ReplaceAll(ctx.Pattern, "{year}", "YYYY")
			},
		},
		FormatHookFuncs{
			After: func(ctx *FormatHookContext) {
				ctx.Result = strings.ToUpper(ctx.Result)
			},
		},
	))

	instant := time.Date(2023, time.August, 24, 0, 0, 0, 0, time.UTC)
	got, err := f.Format("MMM {year}", At(instant))
	require.NoError(t, err)
	assert.Equal(t, "AUG 2023", got)
}

func TestHooksCanSwitchLocale(t *testing.T) {
	t.Parallel()

	instant := time.Date(2023, time.August, 24, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		rewrite  string
		want     string
		rendered string
	}{
		{name: "loadable locale", rewrite: "de", want: "Donnerstag", rendered: "de"},
		{name: "unknown locale", rewrite: "xx", want: "Thursday", rendered: "en"},
		{name: "empty locale", rewrite: "", want: "Thursday", rendered: "en"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var rendered string
			f := newTestFormatter(t, WithHooks(FormatHookFuncs{
				Before: func(ctx *FormatHookContext) { ctx.Locale = tt.rewrite },
				After:  func(ctx *FormatHookContext) { rendered = ctx.Locale },
			}))

			got, err := f.Format("DDD", At(instant))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rendered, rendered)
			assert.Equal(t, "en", f.Lang(""))
		})
	}
}

func TestHookContextSeesSegmentsAndLocale(t *testing.T) {
	t.Parallel()

	var captured FormatHookContext
	f := newTestFormatter(t, WithHooks(FormatHookFuncs{
		After: func(ctx *FormatHookContext) { captured = *ctx },
	}))
	f.Lang("uk")

	instant := time.Date(2023, time.August, 24, 0, 0, 0, 0, time.UTC)
	_, err := f.Format("dd.MM", At(instant))
	require.NoError(t, err)

	assert.Equal(t, "uk", captured.Locale)
	assert.Equal(t, []Segment{tok("dd"), lit("."), tok("MM")}, captured.Segments)
	assert.True(t, instant.Equal(captured.Instant))
	assert.Equal(t, KindTime, captured.Value.Kind())
}

func TestHookErrorCannotFailFormat(t *testing.T) {
	t.Parallel()

	f := newTestFormatter(t, WithHooks(FormatHookFuncs{
		After: func(ctx *FormatHookContext) { ctx.Error = ErrInvalidConfig },
	}))

	got, err := f.Format("YYYY", At(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, "2023", got)
}

func TestHookContextMetadataOnNil(t *testing.T) {
	t.Parallel()

	var ctx *FormatHookContext
	ctx.SetMetadata("k", 1)
	_, ok := ctx.MetadataValue("k")
	assert.False(t, ok)

	ctx = &FormatHookContext{}
	ctx.SetMetadata("", 1)
	assert.Nil(t, ctx.Metadata)
}

func TestFilterHooks(t *testing.T) {
	t.Parallel()

	assert.Nil(t, filterHooks(nil))
	assert.Nil(t, filterHooks([]FormatHook{nil}))
	assert.Len(t, filterHooks([]FormatHook{nil, FormatHookFuncs{}}), 1)
}
