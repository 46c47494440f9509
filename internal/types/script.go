package types

import (
	"encoding/json"
	"fmt"
)

// ActionKind is the operation a DOM executor performs on a field.
type ActionKind string

const (
	ActionClick ActionKind = "click_on_opid"
	ActionFocus ActionKind = "focus_by_opid"
	ActionFill  ActionKind = "fill_by_opid"
)

// Action is one atomic fill-script operation.
type Action struct {
	Kind  ActionKind
	OpID  string
	Value string
}

// MarshalJSON encodes the action in the executor's tuple form,
// e.g. ["fill_by_opid", "__3", "value"].
func (a Action) MarshalJSON() ([]byte, error) {
	if a.Kind == ActionFill {
		return json.Marshal([]string{string(a.Kind), a.OpID, a.Value})
	}
	return json.Marshal([]string{string(a.Kind), a.OpID})
}

// UnmarshalJSON decodes the tuple form.
func (a *Action) UnmarshalJSON(data []byte) error {
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) < 2 {
		return fmt.Errorf("invalid fill action %s", string(data))
	}
	a.Kind = ActionKind(parts[0])
	a.OpID = parts[1]
	if len(parts) > 2 {
		a.Value = parts[2]
	}
	return nil
}

// ScriptProperties carries executor settings.
type ScriptProperties struct {
	DelayBetweenOperations int `json:"delay_between_operations,omitempty"`
}

// FillScript is the ordered operation list handed to the DOM executor.
type FillScript struct {
	ID              string           `json:"id,omitempty"`
	Script          []Action         `json:"script"`
	Properties      ScriptProperties `json:"properties"`
	SavedURLs       []string         `json:"savedUrls,omitempty"`
	UntrustedIframe bool             `json:"untrustedIframe"`
	ItemType        string           `json:"itemType,omitempty"`
}

// NewFillScript returns an empty script.
func NewFillScript() *FillScript {
	return &FillScript{Script: []Action{}}
}

// FillByOpID appends the operations that write value into field. Spans get
// the fill only; other elements are clicked and focused first. The value
// is written as is, maxLength is left to the executor.
func (s *FillScript) FillByOpID(field *Field, value string) {
	if !field.IsSpan() {
		s.Script = append(s.Script,
			Action{Kind: ActionClick, OpID: field.OpID},
			Action{Kind: ActionFocus, OpID: field.OpID},
		)
	}
	s.Script = append(s.Script, Action{Kind: ActionFill, OpID: field.OpID, Value: value})
}

// FocusByOpID appends a focus operation.
func (s *FillScript) FocusByOpID(opid string) {
	s.Script = append(s.Script, Action{Kind: ActionFocus, OpID: opid})
}

// Fills returns the fill operations only, in script order.
func (s *FillScript) Fills() []Action {
	if s == nil {
		return nil
	}
	var out []Action
	for _, a := range s.Script {
		if a.Kind == ActionFill {
			out = append(out, a)
		}
	}
	return out
}

// Empty reports whether the script holds no operation.
func (s *FillScript) Empty() bool {
	return s == nil || len(s.Script) == 0
}

// FilledFields is the set of fields already claimed by a fill operation,
// keyed by opid and kept in claim order.
type FilledFields struct {
	order  []string
	fields map[string]*Field
}

// NewFilledFields returns an empty set.
func NewFilledFields() *FilledFields {
	return &FilledFields{fields: make(map[string]*Field)}
}

// Has reports whether opid was already claimed.
func (ff *FilledFields) Has(opid string) bool {
	_, ok := ff.fields[opid]
	return ok
}

// Claim records field as filled. It returns false when the opid was
// already claimed, in which case the set is unchanged.
func (ff *FilledFields) Claim(field *Field) bool {
	if field == nil || ff.Has(field.OpID) {
		return false
	}
	ff.fields[field.OpID] = field
	ff.order = append(ff.order, field.OpID)
	return true
}

// Fields returns the claimed fields in claim order.
func (ff *FilledFields) Fields() []*Field {
	out := make([]*Field, 0, len(ff.order))
	for _, opid := range ff.order {
		out = append(out, ff.fields[opid])
	}
	return out
}

// Len returns the number of claimed fields.
func (ff *FilledFields) Len() int {
	return len(ff.order)
}
