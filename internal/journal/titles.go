package journal

import "strings"

// Titles is the global field-key → title table the user edits. It is seeded
// with DefaultTitles and persisted independently of entries.
type Titles map[string]string

var defaultTitles = map[string]string{
	KeyWhatWentWell:           "What went well today?",
	KeyWhatILearned:           "What did I learn today?",
	KeyWhatWouldDoDifferently: "What would I do differently?",
	KeyNextStep:               "What’s my next step?",
}

// DefaultTitles returns a fresh copy of the built-in core questions.
func DefaultTitles() Titles {
	t := make(Titles, len(defaultTitles))
	for k, v := range defaultTitles {
		t[k] = v
	}
	return t
}

// Clone copies t so callers can snapshot it into an entry.
func (t Titles) Clone() Titles {
	c := make(Titles, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// Field is one displayable field of an entry.
type Field struct {
	Key   string
	Value string
	Title string
}

// ResolveFields returns the entry's non-blank fields with their titles: core
// fields in declaration order, then dynamic fields by numeric suffix.
func ResolveFields(e Entry, titles Titles) []Field {
	var fields []Field
	for _, key := range e.Keys() {
		value := e.Value(key)
		if isBlank(value) {
			continue
		}
		fields = append(fields, Field{Key: key, Value: value, Title: TitleFor(e, titles, key)})
	}
	return fields
}

// TitleFor resolves the title of key regardless of its value.
func TitleFor(e Entry, titles Titles, key string) string {
	if t, ok := lookupTitle(e, titles, key); ok {
		return t
	}
	return key
}

func lookupTitle(e Entry, titles Titles, key string) (string, bool) {
	if t := e.CustomTitles[TitleKey(key)]; !isBlank(t) {
		return t, true
	}
	if t := titles[key]; !isBlank(t) {
		return t, true
	}
	if !IsCoreKey(key) {
		if t := titles[TitleKey(key)]; !isBlank(t) {
			return t, true
		}
	}
	if t, ok := defaultTitles[key]; ok {
		return t, true
	}
	return "", false
}

// hasTitle is lookupTitle minus the built-in default when the user has
// explicitly blanked the global title.
func hasTitle(e Entry, titles Titles, key string) bool {
	if !isBlank(e.CustomTitles[TitleKey(key)]) {
		return true
	}
	if t, ok := titles[key]; ok {
		return !isBlank(t)
	}
	if !IsCoreKey(key) {
		return !isBlank(titles[TitleKey(key)])
	}
	return true
}

// Validate rejects entries that must not be rendered or stored: entries
// with nothing to display, and filled fields without a title.
func Validate(e Entry, titles Titles) error {
	fields := ResolveFields(e, titles)
	if len(fields) == 0 {
		return ErrNoContent()
	}
	for _, f := range fields {
		if !hasTitle(e, titles, f.Key) {
			return &ValidationError{
				Key:     f.Key,
				Message: `Please provide a title for the entry with content: "` + strings.TrimSpace(f.Value) + `"`,
			}
		}
	}
	return nil
}
