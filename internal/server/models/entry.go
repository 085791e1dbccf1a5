package models

import (
	"maps"
	"time"

	"github.com/dmitrijs2005/jourin/internal/journal"
)

// Entry is a stored journal submission. Core answers are columns; added
// fields and the titles used at creation are JSON documents.
type Entry struct {
	ID     string
	UserID string

	WhatWentWell           string
	WhatILearned           string
	WhatWouldDoDifferently string
	NextStep               string

	DynamicFields map[string]string
	CustomTitles  map[string]string

	UserGoal       string
	PromptTemplate string

	// CreatedAt is the client-side creation time and, with UserID, the
	// entry's natural key during sync.
	CreatedAt time.Time
}

// EntryFromJournal binds a journal entry to userID. A zero Timestamp leaves
// CreatedAt zero.
func EntryFromJournal(userID string, e journal.Entry) *Entry {
	m := &Entry{
		ID:                     e.ID,
		UserID:                 userID,
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
		m.CreatedAt = time.UnixMilli(e.Timestamp).UTC()
	}
	return m
}

// Journal returns the entry as the journal package sees it.
func (m *Entry) Journal() journal.Entry {
	e := journal.Entry{
		ID:                     m.ID,
		WhatWentWell:           m.WhatWentWell,
		WhatILearned:           m.WhatILearned,
		WhatWouldDoDifferently: m.WhatWouldDoDifferently,
		NextStep:               m.NextStep,
		DynamicFields:          maps.Clone(m.DynamicFields),
		CustomTitles:           maps.Clone(m.CustomTitles),
		UserGoal:               m.UserGoal,
		PromptTemplate:         m.PromptTemplate,
	}
	if !m.CreatedAt.IsZero() {
		e.Timestamp = m.CreatedAt.UnixMilli()
	}
	return e
}
