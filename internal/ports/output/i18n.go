package output

// T renders user-facing text for a locale. Missing keys fall back to the
// default locale, then to the key itself.
type T interface {
	// data fills template placeholders and may be nil.
	T(locale, key string, data map[string]any) string
	DefaultLocale() string
}
