// Package workspace persists the client's in-progress editing state: the
// draft entry, global field titles, the list of user-added fields, the
// goal, the saved prompt template and the field display order.
//
// Each piece lives under its own key in the client's key-value storage.
// Corrupt values are logged, removed and replaced by defaults.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/jourin/internal/client/kv"
	"github.com/dmitrijs2005/jourin/internal/journal"
	"github.com/dmitrijs2005/jourin/internal/logging"
)

const (
	DraftKey    = "jourin_current_draft"
	TitlesKey   = "jourin_custom_titles"
	FieldsKey   = "jourin_additional_fields"
	GoalKey     = "jourin_user_goal"
	TemplateKey = "jourin_prompt_template"
	OrderKey    = "jourin_dnd_order"
)

var ErrUnknownField = errors.New("unknown field")

type Workspace struct {
	mu  sync.Mutex
	kv  kv.Store
	log logging.Logger

	// nextIndex only grows, so a removed field's index is not handed out
	// again while the process lives.
	nextIndex int
}

func New(s kv.Store, log logging.Logger) *Workspace {
	return &Workspace{kv: s, log: log.With("module", "workspace")}
}

func (w *Workspace) Draft(ctx context.Context) (journal.Entry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft(ctx)
}

func (w *Workspace) draft(ctx context.Context) (journal.Entry, error) {
	var e journal.Entry
	if _, err := kv.LoadJSON(ctx, w.kv, w.log, DraftKey, &e); err != nil {
		return journal.Entry{}, err
	}

	fields, err := w.fields(ctx)
	if err != nil {
		return journal.Entry{}, err
	}
	for _, k := range fields {
		if _, ok := e.DynamicFields[k]; !ok {
			e.SetValue(k, "")
		}
	}
	return e, nil
}

func (w *Workspace) SaveDraft(ctx context.Context, e journal.Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return kv.SetJSON(ctx, w.kv, DraftKey, e)
}

// SetValue writes one field of the draft. key must be a core key or one of
// the added fields.
func (w *Workspace) SetValue(ctx context.Context, key, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !journal.IsCoreKey(key) {
		fields, err := w.fields(ctx)
		if err != nil {
			return err
		}
		if !slices.Contains(fields, key) {
			return fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
	}

	e, err := w.draft(ctx)
	if err != nil {
		return err
	}
	e.SetValue(key, value)
	return kv.SetJSON(ctx, w.kv, DraftKey, e)
}

// ClearDraft blanks every draft value. Added fields and titles stay.
func (w *Workspace) ClearDraft(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, err := w.draft(ctx)
	if err != nil {
		return err
	}
	e.ClearValues()
	e.UserGoal = ""
	e.PromptTemplate = ""
	return kv.SetJSON(ctx, w.kv, DraftKey, e)
}

// Titles returns the global title table: defaults overlaid with what the
// user has set.
func (w *Workspace) Titles(ctx context.Context) (journal.Titles, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.titles(ctx)
}

func (w *Workspace) titles(ctx context.Context) (journal.Titles, error) {
	titles := journal.DefaultTitles()

	var stored map[string]string
	if _, err := kv.LoadJSON(ctx, w.kv, w.log, TitlesKey, &stored); err != nil {
		return nil, err
	}
	for k, v := range stored {
		titles[k] = v
	}
	return titles, nil
}

func (w *Workspace) SetTitle(ctx context.Context, key, title string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	titles, err := w.titles(ctx)
	if err != nil {
		return err
	}
	titles[key] = strings.TrimSpace(title)
	return kv.SetJSON(ctx, w.kv, TitlesKey, titles)
}

// Fields lists the added field keys in creation order.
func (w *Workspace) Fields(ctx context.Context) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fields(ctx)
}

func (w *Workspace) fields(ctx context.Context) ([]string, error) {
	var fields []string
	if _, err := kv.LoadJSON(ctx, w.kv, w.log, FieldsKey, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// AddField creates the next customField_<n>, optionally titled, and returns
// its key.
func (w *Workspace) AddField(ctx context.Context, title string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	fields, err := w.fields(ctx)
	if err != nil {
		return "", err
	}

	idx := max(w.nextIndex, journal.NextDynamicIndex(fields))
	key := journal.DynamicKey(idx)
	w.nextIndex = idx + 1

	fields = append(fields, key)
	if err := kv.SetJSON(ctx, w.kv, FieldsKey, fields); err != nil {
		return "", err
	}

	if title = strings.TrimSpace(title); title != "" {
		titles, err := w.titles(ctx)
		if err != nil {
			return "", err
		}
		titles[key] = title
		if err := kv.SetJSON(ctx, w.kv, TitlesKey, titles); err != nil {
			return "", err
		}
	}

	order, err := w.order(ctx)
	if err != nil {
		return "", err
	}
	if !slices.Contains(order, key) {
		order = append(order, key)
	}
	if err := kv.SetJSON(ctx, w.kv, OrderKey, order); err != nil {
		return "", err
	}

	return key, nil
}

// RemoveField deletes an added field together with its draft value and
// title. Other fields keep their keys.
func (w *Workspace) RemoveField(ctx context.Context, key string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	fields, err := w.fields(ctx)
	if err != nil {
		return err
	}
	i := slices.Index(fields, key)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	if n, ok := journal.DynamicIndex(key); ok && n >= w.nextIndex {
		w.nextIndex = n + 1
	}
	fields = slices.Delete(fields, i, i+1)
	if err := kv.SetJSON(ctx, w.kv, FieldsKey, fields); err != nil {
		return err
	}

	e, err := w.draft(ctx)
	if err != nil {
		return err
	}
	e.RemoveField(key)
	if err := kv.SetJSON(ctx, w.kv, DraftKey, e); err != nil {
		return err
	}

	titles, err := w.titles(ctx)
	if err != nil {
		return err
	}
	delete(titles, key)
	delete(titles, journal.TitleKey(key))
	if err := kv.SetJSON(ctx, w.kv, TitlesKey, titles); err != nil {
		return err
	}

	order, err := w.order(ctx)
	if err != nil {
		return err
	}
	order = slices.DeleteFunc(order, func(k string) bool { return k == key })
	return kv.SetJSON(ctx, w.kv, OrderKey, order)
}

// Goal returns the saved goal, "" when none.
func (w *Workspace) Goal(ctx context.Context) (string, error) {
	return w.getText(ctx, GoalKey)
}

// SetGoal saves goal; a blank goal removes it.
func (w *Workspace) SetGoal(ctx context.Context, goal string) error {
	return w.setText(ctx, GoalKey, goal)
}

// Template returns the saved prompt template, "" when none.
func (w *Workspace) Template(ctx context.Context) (string, error) {
	return w.getText(ctx, TemplateKey)
}

// SetTemplate saves body; a blank body removes it.
func (w *Workspace) SetTemplate(ctx context.Context, body string) error {
	return w.setText(ctx, TemplateKey, body)
}

func (w *Workspace) getText(ctx context.Context, key string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	b, err := w.kv.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (w *Workspace) setText(ctx context.Context, key, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if strings.TrimSpace(value) == "" {
		return w.kv.Delete(ctx, key)
	}
	return w.kv.Set(ctx, key, []byte(value))
}

// Order returns every field key in display order: the saved order first,
// then any field it does not mention (core keys, then added fields).
func (w *Workspace) Order(ctx context.Context) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	order, err := w.order(ctx)
	if err != nil {
		return nil, err
	}
	fields, err := w.fields(ctx)
	if err != nil {
		return nil, err
	}

	known := append(slices.Clone(journal.CoreKeys), fields...)
	out := make([]string, 0, len(known))
	for _, k := range order {
		if slices.Contains(known, k) && !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	for _, k := range known {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out, nil
}

func (w *Workspace) SetOrder(ctx context.Context, keys []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return kv.SetJSON(ctx, w.kv, OrderKey, keys)
}

func (w *Workspace) order(ctx context.Context) ([]string, error) {
	var order []string
	if _, err := kv.LoadJSON(ctx, w.kv, w.log, OrderKey, &order); err != nil {
		return nil, err
	}
	return order, nil
}
