package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// AnswerSet maps a field name (or its "_other" sibling) to either a text
// value or an ordered list of selections. Keys that match no field are kept
// as-is.
type AnswerSet struct {
	texts    map[string]string
	selected map[string][]string
}

func NewAnswerSet() AnswerSet {
	return AnswerSet{
		texts:    map[string]string{},
		selected: map[string][]string{},
	}
}

func (a *AnswerSet) init() {
	if a.texts == nil {
		a.texts = map[string]string{}
	}
	if a.selected == nil {
		a.selected = map[string][]string{}
	}
}

func (a *AnswerSet) SetText(name, value string) {
	a.init()
	delete(a.selected, name)
	a.texts[name] = value
}

func (a *AnswerSet) SetSelected(name string, values []string) {
	a.init()
	delete(a.texts, name)
	a.selected[name] = append([]string{}, values...)
}

// Text returns the text stored under name. A selection list is joined with
// ", " so callers never lose data.
func (a AnswerSet) Text(name string) string {
	if v, ok := a.texts[name]; ok {
		return v
	}
	if v, ok := a.selected[name]; ok {
		return strings.Join(v, ", ")
	}
	return ""
}

// Selected returns the selections stored under name. A non-blank scalar is
// read as a single selection.
func (a AnswerSet) Selected(name string) []string {
	if v, ok := a.selected[name]; ok {
		return v
	}
	if v := a.texts[name]; strings.TrimSpace(v) != "" {
		return []string{v}
	}
	return nil
}

func (a AnswerSet) Has(name string) bool {
	_, text := a.texts[name]
	_, list := a.selected[name]
	return text || list
}

func (a AnswerSet) Len() int {
	return len(a.texts) + len(a.selected)
}

// Key returns the trimmed natural key of the respondent.
func (a AnswerSet) Key() NaturalKey {
	return NaturalKey{
		Department: strings.TrimSpace(a.Text(FieldDepartment)),
		Person:     strings.TrimSpace(a.Text(FieldPerson)),
	}
}

func (a AnswerSet) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, a.Len())
	for k, v := range a.texts {
		flat[k] = v
	}
	for k, v := range a.selected {
		if v == nil {
			v = []string{}
		}
		flat[k] = v
	}
	return json.Marshal(flat)
}

func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	*a = NewAnswerSet()
	for k, raw := range flat {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		switch v := v.(type) {
		case nil:
		case string:
			a.texts[k] = v
		case []any:
			list := make([]string, 0, len(v))
			for _, item := range v {
				if item == nil {
					continue
				}
				list = append(list, scalarString(item))
			}
			a.selected[k] = list
		default:
			a.texts[k] = scalarString(v)
		}
	}
	return nil
}

func scalarString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

// DecodeAnswers parses a persisted answer payload. A malformed payload
// yields an empty set and the decoding error.
func DecodeAnswers(payload string) (AnswerSet, error) {
	answers := NewAnswerSet()
	if err := json.Unmarshal([]byte(payload), &answers); err != nil {
		return NewAnswerSet(), err
	}
	return answers, nil
}

type NaturalKey struct {
	Department string `json:"department_name"`
	Person     string `json:"person_name"`
}

func (k NaturalKey) Valid() bool {
	return k.Department != "" && k.Person != ""
}

type ResponseRecord struct {
	ID          int64      `json:"id"`
	Key         NaturalKey `json:"key"`
	Answers     AnswerSet  `json:"answers"`
	SubmittedAt time.Time  `json:"submitted_at"`
}
