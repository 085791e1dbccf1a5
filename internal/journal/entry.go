package journal

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

const (
	KeyWhatWentWell           = "whatWentWell"
	KeyWhatILearned           = "whatILearned"
	KeyWhatWouldDoDifferently = "whatWouldDoDifferently"
	KeyNextStep               = "nextStep"

	// DynamicKeyPrefix prefixes every user-added field key.
	DynamicKeyPrefix = "customField_"

	titleSuffix = "_title"
)

// CoreKeys lists the core fields in display order.
var CoreKeys = []string{KeyWhatWentWell, KeyWhatILearned, KeyWhatWouldDoDifferently, KeyNextStep}

// Entry is one journal submission.
type Entry struct {
	// ID is assigned by the remote backend and is opaque to callers.
	ID string `json:"id,omitempty"`
	// Timestamp is milliseconds since epoch, set once at creation.
	Timestamp int64 `json:"timestamp"`

	WhatWentWell           string `json:"whatWentWell,omitempty"`
	WhatILearned           string `json:"whatILearned,omitempty"`
	WhatWouldDoDifferently string `json:"whatWouldDoDifferently,omitempty"`
	NextStep               string `json:"nextStep,omitempty"`

	DynamicFields map[string]string `json:"dynamicFields,omitempty"`
	CustomTitles  map[string]string `json:"customTitles,omitempty"`

	UserGoal       string `json:"userGoal,omitempty"`
	PromptTemplate string `json:"promptTemplate,omitempty"`
}

func IsCoreKey(key string) bool {
	switch key {
	case KeyWhatWentWell, KeyWhatILearned, KeyWhatWouldDoDifferently, KeyNextStep:
		return true
	}
	return false
}

// IsDynamicKey reports whether key names a user-added field value.
func IsDynamicKey(key string) bool {
	return strings.HasPrefix(key, DynamicKeyPrefix) && !strings.HasSuffix(key, titleSuffix)
}

// DynamicIndex extracts n from customField_<n>.
func DynamicIndex(key string) (int, bool) {
	if !IsDynamicKey(key) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(key, DynamicKeyPrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// DynamicKey formats the key for index n.
func DynamicKey(n int) string {
	return DynamicKeyPrefix + strconv.Itoa(n)
}

// NextDynamicIndex returns one past the highest index among keys.
func NextDynamicIndex(keys []string) int {
	next := 0
	for _, k := range keys {
		if n, ok := DynamicIndex(k); ok && n >= next {
			next = n + 1
		}
	}
	return next
}

// NextDynamicKey returns the key for the next user-added field. Indexes
// left behind by removed fields are never handed out again.
func NextDynamicKey(existing []string) string {
	return DynamicKey(NextDynamicIndex(existing))
}

// TitleKey is the CustomTitles key holding the title of field key.
func TitleKey(key string) string {
	if IsCoreKey(key) {
		return key
	}
	return key + titleSuffix
}

// SortDynamicKeys orders keys by numeric suffix; keys without one go last,
// in lexical order.
func SortDynamicKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, aok := DynamicIndex(keys[i])
		b, bok := DynamicIndex(keys[j])
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		default:
			return keys[i] < keys[j]
		}
	})
}

// Value returns the value of a core or dynamic field.
func (e Entry) Value(key string) string {
	switch key {
	case KeyWhatWentWell:
		return e.WhatWentWell
	case KeyWhatILearned:
		return e.WhatILearned
	case KeyWhatWouldDoDifferently:
		return e.WhatWouldDoDifferently
	case KeyNextStep:
		return e.NextStep
	}
	return e.DynamicFields[key]
}

// SetValue sets a core or dynamic field. Setting a dynamic field to "" keeps
// the key; use RemoveField to drop it.
func (e *Entry) SetValue(key, value string) {
	switch key {
	case KeyWhatWentWell:
		e.WhatWentWell = value
	case KeyWhatILearned:
		e.WhatILearned = value
	case KeyWhatWouldDoDifferently:
		e.WhatWouldDoDifferently = value
	case KeyNextStep:
		e.NextStep = value
	default:
		if e.DynamicFields == nil {
			e.DynamicFields = make(map[string]string)
		}
		e.DynamicFields[key] = value
	}
}

// RemoveField drops a dynamic field together with its title override.
func (e *Entry) RemoveField(key string) {
	delete(e.DynamicFields, key)
	delete(e.CustomTitles, TitleKey(key))
}

// SetTitle stores an entry-level title override.
func (e *Entry) SetTitle(key, title string) {
	if e.CustomTitles == nil {
		e.CustomTitles = make(map[string]string)
	}
	e.CustomTitles[TitleKey(key)] = title
}

// Keys returns every field key: core keys first, then dynamic keys in
// ascending numeric order.
func (e Entry) Keys() []string {
	keys := make([]string, 0, len(CoreKeys)+len(e.DynamicFields))
	keys = append(keys, CoreKeys...)

	dynamic := make([]string, 0, len(e.DynamicFields))
	for k := range e.DynamicFields {
		if isDisplayableKey(k) {
			dynamic = append(dynamic, k)
		}
	}
	SortDynamicKeys(dynamic)
	return append(keys, dynamic...)
}

// IsBlank reports whether every core and dynamic value is blank.
func (e Entry) IsBlank() bool {
	for _, k := range e.Keys() {
		if !isBlank(e.Value(k)) {
			return false
		}
	}
	return true
}

// ClearValues blanks every value and keeps field keys and titles.
func (e *Entry) ClearValues() {
	for _, k := range e.Keys() {
		e.SetValue(k, "")
	}
}

func isDisplayableKey(key string) bool {
	switch key {
	case "timestamp", "customTitles", "userGoal", "promptTemplate", "id", "dynamicFields":
		return false
	}
	return !strings.HasSuffix(key, titleSuffix)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// UnmarshalJSON decodes both the canonical shape and records written by
// older clients, where dynamic values and "<key>_title" overrides were
// stored as top-level properties and dynamic values sometimes sat inside
// customTitles. The nested customTitles map wins over a top-level title.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for k, v := range raw {
		var s string
		if json.Unmarshal(v, &s) != nil {
			continue
		}
		switch {
		case strings.HasSuffix(k, titleSuffix):
			tk := TitleKey(strings.TrimSuffix(k, titleSuffix))
			if isBlank(s) || !isBlank(p.CustomTitles[tk]) {
				continue
			}
			if p.CustomTitles == nil {
				p.CustomTitles = make(map[string]string)
			}
			p.CustomTitles[tk] = s
		case IsDynamicKey(k):
			if _, ok := p.DynamicFields[k]; ok {
				continue
			}
			if p.DynamicFields == nil {
				p.DynamicFields = make(map[string]string)
			}
			p.DynamicFields[k] = s
		}
	}

	for k, v := range p.CustomTitles {
		if !IsDynamicKey(k) {
			continue
		}
		if _, ok := p.DynamicFields[k]; !ok {
			if p.DynamicFields == nil {
				p.DynamicFields = make(map[string]string)
			}
			p.DynamicFields[k] = v
		}
		delete(p.CustomTitles, k)
	}

	*e = Entry(p)
	return nil
}
