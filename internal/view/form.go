package view

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hanpama/gqlview/internal/eventbus"
	"github.com/hanpama/gqlview/internal/events"
	"github.com/hanpama/gqlview/internal/extract"
	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/project"
	"github.com/hanpama/gqlview/internal/tree"
)

// Form holds the editable state of the record selected by the @form field.
// State is keyed by each input's response path below the record, so an
// aliased field is stored under its alias. It is safe for concurrent use.
type Form struct {
	fields  []meta.FormMeta
	byKey   map[string]meta.FormMeta
	nested  []string
	label   string
	dataKey string

	mu      sync.Mutex
	loading bool
	initial map[string]any
	state   map[string]any
}

// NewForm extracts the form fields, label and data key from doc. defaults
// seed the state until the first snapshot arrives.
func NewForm(ctx context.Context, doc *ast.QueryDocument, t *tree.Tree, defaults map[string]any) (*Form, error) {
	op := operationName(doc)
	eventbus.Publish(ctx, events.ExtractStart{Mode: "form", OperationName: op})
	start := time.Now()

	fields, err := extract.Form(doc, t)
	if err != nil {
		extracted(ctx, "form", op, start, 0, err)
		return nil, err
	}
	key, err := extract.FormDataKey(doc)
	if err != nil {
		extracted(ctx, "form", op, start, 0, err)
		return nil, err
	}
	extracted(ctx, "form", op, start, len(fields), nil)

	f := &Form{
		fields:  fields,
		byKey:   make(map[string]meta.FormMeta, len(fields)),
		label:   extract.FormLabel(doc),
		dataKey: key,
		initial: maps.Clone(defaults),
		state:   maps.Clone(defaults),
	}
	if f.initial == nil {
		f.initial = map[string]any{}
		f.state = map[string]any{}
	}
	for _, m := range fields {
		k := f.StateKey(m)
		if _, dup := f.byKey[k]; !dup && strings.Contains(k, ".") {
			f.nested = append(f.nested, k)
		}
		f.byKey[k] = m
	}
	return f, nil
}

// StateKey returns the key m's value is stored under: its response path
// relative to the form record.
func (f *Form) StateKey(m meta.FormMeta) string {
	_, rest, _ := strings.Cut(m.Path, ".")
	if k, ok := strings.CutPrefix(rest, f.dataKey+"."); ok {
		return k
	}
	return rest
}

func (f *Form) Fields() []meta.FormMeta { return f.fields }
func (f *Form) Label() string           { return f.label }
func (f *Form) DataKey() string         { return f.dataKey }

// Apply merges data[DataKey] of s into the state. A null record leaves the
// state untouched. Values received from the server also become the
// baseline Changes compares against.
func (f *Form) Apply(ctx context.Context, s Snapshot) error {
	eventbus.Publish(ctx, events.Snapshot{View: "form", Loading: s.Loading, Errors: len(s.Errors)})

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = s.Loading
	if s.Data == nil {
		return nil
	}
	raw, ok := s.Data[f.dataKey]
	if !ok {
		if s.Loading {
			return nil
		}
		return meta.Directivef(nil, "%q not found in result data", f.dataKey)
	}
	if raw == nil {
		return nil
	}
	record, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("result field %q is %T, not an object", f.dataKey, raw)
	}
	maps.Copy(f.state, record)
	maps.Copy(f.initial, record)
	for _, k := range f.nested {
		if v, ok := project.Lookup(record, k); ok {
			f.state[k] = v
			f.initial[k] = v
		}
	}
	return nil
}

// Set records an edit to the input stored under key (see StateKey) after
// checking it against the field metadata.
func (f *Form) Set(key string, value any) error {
	m, ok := f.byKey[key]
	if !ok {
		return meta.Directivef(nil, "form has no @input field %q", key)
	}
	if !m.Editable {
		return meta.Directivef(nil, "field %q of type %s is not editable", key, m.TypeName)
	}
	if value == nil {
		if m.NonNull {
			return meta.Directivef(nil, "field %q is non-null", key)
		}
	} else if err := checkValue(m, value); err != nil {
		return err
	}

	f.mu.Lock()
	f.state[key] = value
	f.mu.Unlock()
	return nil
}

func checkValue(m meta.FormMeta, value any) error {
	switch m.Kind {
	case meta.BooleanInput:
		if _, ok := value.(bool); !ok {
			return meta.Directivef(nil, "field %q takes a boolean, got %T", m.Key, value)
		}
	case meta.EnumInput:
		s, ok := value.(string)
		if !ok {
			return meta.Directivef(nil, "field %q takes an enum value name, got %T", m.Key, value)
		}
		if s == meta.NullOption {
			return meta.Directivef(nil, "field %q: %s is a placeholder, not a value", m.Key, meta.NullOption)
		}
		for _, opt := range m.Options {
			if opt == s {
				return nil
			}
		}
		return meta.Directivef(nil, "field %q: %q is not one of %v", m.Key, s, m.Options)
	default:
		switch value.(type) {
		case string:
		case float64, int, int64:
			if m.TypeName != "Int" && m.TypeName != "Float" {
				return meta.Directivef(nil, "field %q takes text, got %T", m.Key, value)
			}
		default:
			return meta.Directivef(nil, "field %q takes text, got %T", m.Key, value)
		}
	}
	return nil
}

// State returns a copy of the current values.
func (f *Form) State() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.state)
}

// Selected returns the value shown by an enum input: the option, or
// meta.NullOption when unset.
func (f *Form) Selected(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.state[key].(string); ok && s != "" {
		return s
	}
	return meta.NullOption
}

func (f *Form) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Changes returns the edited values that differ from the last values
// received from the server.
func (f *Form) Changes() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]any{}
	for k, v := range f.state {
		if old, ok := f.initial[k]; !ok || !reflect.DeepEqual(old, v) {
			out[k] = v
		}
	}
	return out
}

func (f *Form) Dirty() bool { return len(f.Changes()) > 0 }
