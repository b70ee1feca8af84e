package datefmt

import "time"

// FormatHook observes format calls.
type FormatHook interface {
	BeforeFormat(ctx *FormatHookContext)
	AfterFormat(ctx *FormatHookContext)
}

// FormatHookContext carries the state of one format call. Hooks run in
// registration order and every BeforeFormat is followed by AfterFormat.
// BeforeFormat may rewrite Pattern, Locale and Instant; AfterFormat may
// rewrite Result. When the date value is rejected, Error is set, Instant is
// zero and the call fails whatever the hooks do.
type FormatHookContext struct {
	Pattern  string
	Locale   string
	Value    Value
	Instant  time.Time
	Segments []Segment
	Result   string
	Error    error
	Metadata map[string]any
}

func (ctx *FormatHookContext) ensureMetadata() {
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
}

func (ctx *FormatHookContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	ctx.ensureMetadata()
	ctx.Metadata[key] = value
}

func (ctx *FormatHookContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

// FormatHookFuncs adapts optional closures to FormatHook.
type FormatHookFuncs struct {
	Before func(ctx *FormatHookContext)
	After  func(ctx *FormatHookContext)
}

func (h FormatHookFuncs) BeforeFormat(ctx *FormatHookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h FormatHookFuncs) AfterFormat(ctx *FormatHookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

func filterHooks(hooks []FormatHook) []FormatHook {
	if len(hooks) == 0 {
		return nil
	}
	filtered := make([]FormatHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		filtered = append(filtered, hook)
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}
