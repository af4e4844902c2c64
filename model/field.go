package model

import "encoding/json"

type Kind string

const (
	KindText        Kind = "text"
	KindTextArea    Kind = "textarea"
	KindMultiSelect Kind = "multiselect"
	KindTextPair    Kind = "text_pair"
)

type Section string

const (
	SectionBasic         Section = "basic"
	SectionQuestionnaire Section = "questionnaire"
)

// Names of the basic inputs every survey definition carries. Department and
// person form the natural key of a response.
const (
	FieldDepartment = "department_name"
	FieldPerson     = "person_name"
	FieldSystem     = "main_system"
	FieldRole       = "main_role"
)

// ChipSeparator joins the chips of a multi-select answer in single string
// contexts. Collected answers never contain it.
const ChipSeparator = "；"

// OtherSuffix is appended to a multi-select name to address its free-text "other" value.
const OtherSuffix = "_other"

// Field is one question of a survey. It is implemented only by the four
// variants in this file.
type Field interface {
	Base() FieldBase
	Kind() Kind
}

type FieldBase struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Section Section `json:"section"`
}

func (f FieldBase) Base() FieldBase { return f }

type TextField struct {
	FieldBase
	Placeholder string `json:"placeholder,omitempty"`
}

func (TextField) Kind() Kind { return KindText }

type TextAreaField struct {
	FieldBase
	Placeholder string `json:"placeholder,omitempty"`
}

func (TextAreaField) Kind() Kind { return KindTextArea }

type MultiSelectField struct {
	FieldBase
	Options    []string `json:"options"`
	AllowOther bool     `json:"allow_other"`
}

func (MultiSelectField) Kind() Kind { return KindMultiSelect }

// OtherName is the answer key holding the free-text "other" value.
func (f MultiSelectField) OtherName() string { return f.Name + OtherSuffix }

// TextInput is one half of a TextPairField.
type TextInput struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
}

type TextPairField struct {
	FieldBase
	Left  TextInput `json:"left"`
	Right TextInput `json:"right"`
}

func (TextPairField) Kind() Kind { return KindTextPair }

// Split returns the pair as two text fields sharing the pair's section.
func (f TextPairField) Split() (TextField, TextField) {
	half := func(in TextInput) TextField {
		return TextField{
			FieldBase:   FieldBase{Name: in.Name, Label: in.Label, Section: f.Section},
			Placeholder: in.Placeholder,
		}
	}
	return half(f.Left), half(f.Right)
}

func (f TextField) MarshalJSON() ([]byte, error)        { return marshalKind(f.Kind(), fieldJSON(f)) }
func (f TextAreaField) MarshalJSON() ([]byte, error)    { return marshalKind(f.Kind(), fieldJSON(f)) }
func (f MultiSelectField) MarshalJSON() ([]byte, error) { return marshalKind(f.Kind(), fieldJSON(f)) }
func (f TextPairField) MarshalJSON() ([]byte, error)    { return marshalKind(f.Kind(), fieldJSON(f)) }

// fieldJSON strips the MarshalJSON method so the default encoding can be reused.
func fieldJSON(f Field) any {
	switch f := f.(type) {
	case TextField:
		type plain TextField
		return plain(f)
	case TextAreaField:
		type plain TextAreaField
		return plain(f)
	case MultiSelectField:
		type plain MultiSelectField
		return plain(f)
	case TextPairField:
		type plain TextPairField
		return plain(f)
	}
	return f
}

func marshalKind(kind Kind, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["kind"], _ = json.Marshal(kind)
	return json.Marshal(fields)
}

// DisplayRow is a group of one or two fields rendered side by side.
type DisplayRow []Field
