// Package prompt renders journal entries into prompt text.
//
// Templates may use either placeholder style:
//
//	{{whatWentWellTitle}}: {{whatWentWell}}   named fields and their titles
//	{{journalEntries}}                        every filled field as "title: value"
//
// plus {{goalSection}} and {{userGoal}}. Tokens that match nothing are left
// as written, so templates saved by older clients keep working.
package prompt

import (
	"regexp"
	"strings"

	"github.com/dmitrijs2005/jourin/internal/journal"
)

var tokenPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// GoalSection is what {{goalSection}} expands to; empty when goal is blank.
func GoalSection(goal string) string {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return ""
	}
	return "\n\nUser's Goal for this post: " + goal +
		". Please tailor the tone and content of the LinkedIn post to align with this goal, " +
		"making it relevant and appealing to an audience that can help achieve it."
}

// EntryLines joins resolved fields as "title: value" lines.
func EntryLines(fields []journal.Field) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, f.Title+": "+f.Value)
	}
	return strings.Join(lines, "\n")
}

// Render substitutes e into template. It fails with a
// *journal.ValidationError when e has no displayable field.
func Render(template string, e journal.Entry, titles journal.Titles) (string, error) {
	fields := journal.ResolveFields(e, titles)
	if len(fields) == 0 {
		return "", journal.ErrNoContent()
	}

	values := map[string]string{
		"journalEntries": EntryLines(fields),
		"goalSection":    GoalSection(e.UserGoal),
		"userGoal":       e.UserGoal,
	}
	for _, key := range e.Keys() {
		values[key] = e.Value(key)
		values[key+"Title"] = journal.TitleFor(e, titles, key)
	}

	return substitute(template, values), nil
}

// RenderWeekly fills {{weeklySummary}}.
func RenderWeekly(template, summary string) string {
	return substitute(template, map[string]string{"weeklySummary": summary})
}

// TemplateFor picks the entry's own template, then the user's saved one,
// then DefaultTemplate.
func TemplateFor(e journal.Entry, saved string) string {
	if strings.TrimSpace(e.PromptTemplate) != "" {
		return e.PromptTemplate
	}
	if strings.TrimSpace(saved) != "" {
		return saved
	}
	return DefaultTemplate
}

func substitute(template string, values map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(token string) string {
		if v, ok := values[token[2:len(token)-2]]; ok {
			return v
		}
		return token
	})
}
