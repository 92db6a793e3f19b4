package output

// T renders localized user-facing text. Keys are dotted catalog paths such
// as errors.not_admin or notify.rally; data fills the template fields and
// may be nil. A key missing from every catalog renders as itself.
type T interface {
	T(locale, key string, data map[string]any) string
}
