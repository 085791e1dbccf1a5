package api

import (
	"maps"
	"time"

	"github.com/dmitrijs2005/jourin/internal/journal"
)

// FromEntry flattens e into the backend shape. A zero Timestamp leaves
// CreatedAt zero so the server assigns it.
func FromEntry(e journal.Entry) EntryRecord {
	r := EntryRecord{
		ID:                     e.ID,
		WhatWentWell:           e.WhatWentWell,
		WhatILearned:           e.WhatILearned,
		WhatWouldDoDifferently: e.WhatWouldDoDifferently,
		NextStep:               e.NextStep,
		DynamicFields:          maps.Clone(e.DynamicFields),
		CustomTitles:           maps.Clone(e.CustomTitles),
		UserGoal:               e.UserGoal,
		PromptTemplate:         e.PromptTemplate,
	}
	if e.Timestamp != 0 {
		r.CreatedAt = time.UnixMilli(e.Timestamp).UTC()
	}
	return r
}

// Entry folds the record back into a journal entry.
func (r EntryRecord) Entry() journal.Entry {
	e := journal.Entry{
		ID:                     r.ID,
		WhatWentWell:           r.WhatWentWell,
		WhatILearned:           r.WhatILearned,
		WhatWouldDoDifferently: r.WhatWouldDoDifferently,
		NextStep:               r.NextStep,
		DynamicFields:          maps.Clone(r.DynamicFields),
		CustomTitles:           maps.Clone(r.CustomTitles),
		UserGoal:               r.UserGoal,
		PromptTemplate:         r.PromptTemplate,
	}
	if !r.CreatedAt.IsZero() {
		e.Timestamp = r.CreatedAt.UnixMilli()
	}
	return e
}

// FromEntries converts a slice with FromEntry.
func FromEntries(entries []journal.Entry) []EntryRecord {
	out := make([]EntryRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromEntry(e))
	}
	return out
}
