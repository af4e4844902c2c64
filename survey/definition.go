// Package survey holds the questionnaire definition and the pure logic
// around it: grouping fields into display rows, canonicalizing selected
// options and collecting answers from a submitted form.
package survey

import (
	_ "embed"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mbolis/interview-survey/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed definition.yaml
var defaultDefinition []byte

type Definition struct {
	Slug           string
	Title          string
	ClosedTitle    string
	ClosedBody     string
	SuccessMessage string
	Fields         []model.Field
}

type rawDefinition struct {
	Slug           string     `yaml:"slug"`
	Title          string     `yaml:"title"`
	ClosedTitle    string     `yaml:"closed_title"`
	ClosedBody     string     `yaml:"closed_body"`
	SuccessMessage string     `yaml:"success_message"`
	Fields         []rawField `yaml:"fields"`
}

type rawField struct {
	Section     string           `yaml:"section"`
	Type        string           `yaml:"type"`
	Name        string           `yaml:"name"`
	Label       string           `yaml:"label"`
	Placeholder string           `yaml:"placeholder"`
	Options     []string         `yaml:"options"`
	AllowOther  bool             `yaml:"allow_other"`
	Left        *model.TextInput `yaml:"left"`
	Right       *model.TextInput `yaml:"right"`
}

// Default returns the definition embedded in the binary.
func Default() (*Definition, error) {
	return Parse(defaultDefinition)
}

// LoadFile reads a definition from a YAML file.
func LoadFile(path string) (*Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "survey.read_definition")
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML definition. Every schema violation is
// reported, not only the first one.
func Parse(raw []byte) (*Definition, error) {
	var rd rawDefinition
	if err := yaml.Unmarshal(raw, &rd); err != nil {
		return nil, errors.Wrap(err, "survey.parse_definition")
	}

	var result *multierror.Error
	if strings.TrimSpace(rd.Slug) == "" {
		result = multierror.Append(result, errors.New("missing slug"))
	}

	def := &Definition{
		Slug:           rd.Slug,
		Title:          rd.Title,
		ClosedTitle:    rd.ClosedTitle,
		ClosedBody:     rd.ClosedBody,
		SuccessMessage: rd.SuccessMessage,
	}
	for i, rf := range rd.Fields {
		f, err := rf.field()
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "field #%d (%s)", i+1, rf.Name))
			continue
		}
		def.Fields = append(def.Fields, f)
	}

	if err := validate(def.Fields); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return def, nil
}

func (rf rawField) field() (model.Field, error) {
	section := model.SectionQuestionnaire
	switch rf.Section {
	case "", string(model.SectionQuestionnaire):
	case string(model.SectionBasic):
		section = model.SectionBasic
	default:
		return nil, errors.Errorf("unknown section %q", rf.Section)
	}

	base := model.FieldBase{Name: rf.Name, Label: rf.Label, Section: section}
	if strings.TrimSpace(rf.Name) == "" {
		return nil, errors.New("missing name")
	}

	switch model.Kind(rf.Type) {
	case model.KindText:
		return model.TextField{FieldBase: base, Placeholder: rf.Placeholder}, nil
	case model.KindTextArea:
		return model.TextAreaField{FieldBase: base, Placeholder: rf.Placeholder}, nil
	case model.KindMultiSelect:
		if len(rf.Options) == 0 {
			return nil, errors.New("multiselect without options")
		}
		return model.MultiSelectField{
			FieldBase:  base,
			Options:    append([]string{}, rf.Options...),
			AllowOther: rf.AllowOther,
		}, nil
	case model.KindTextPair:
		if rf.Left == nil || rf.Right == nil {
			return nil, errors.New("text_pair needs both left and right")
		}
		if rf.Left.Name == "" || rf.Right.Name == "" {
			return nil, errors.New("text_pair input without name")
		}
		return model.TextPairField{FieldBase: base, Left: *rf.Left, Right: *rf.Right}, nil
	default:
		return nil, errors.Errorf("unknown type %q", rf.Type)
	}
}

func validate(fields []model.Field) error {
	var result *multierror.Error

	seen := map[string]bool{}
	claim := func(name string) {
		if seen[name] {
			result = multierror.Append(result, errors.Errorf("duplicate name %q", name))
		}
		seen[name] = true
	}

	for _, f := range fields {
		claim(f.Base().Name)
		switch f := f.(type) {
		case model.TextPairField:
			claim(f.Left.Name)
			claim(f.Right.Name)
		case model.MultiSelectField:
			if f.AllowOther {
				claim(f.OtherName())
			}
			options := map[string]bool{}
			keys := map[string]string{}
			for _, o := range f.Options {
				if options[o] {
					result = multierror.Append(result, errors.Errorf("%s: duplicate option %q", f.Name, o))
					continue
				}
				options[o] = true

				key := NormalizeOptionKey(o)
				if prev, ok := keys[key]; ok {
					result = multierror.Append(result, errors.Errorf("%s: options %q and %q are indistinguishable", f.Name, prev, o))
				}
				keys[key] = o
			}
		}
	}

	for _, required := range []string{model.FieldDepartment, model.FieldPerson} {
		if !seen[required] {
			result = multierror.Append(result, errors.Errorf("missing required input %q", required))
		}
	}
	return result.ErrorOrNil()
}

func (d *Definition) BasicFields() []model.Field {
	return d.fieldsIn(model.SectionBasic)
}

func (d *Definition) QuestionnaireFields() []model.Field {
	return d.fieldsIn(model.SectionQuestionnaire)
}

func (d *Definition) fieldsIn(section model.Section) []model.Field {
	var fields []model.Field
	for _, f := range d.Fields {
		if f.Base().Section == section {
			fields = append(fields, f)
		}
	}
	return fields
}

// Entries flattens the definition for reporting: every text pair becomes
// its two text inputs.
func (d *Definition) Entries() []model.Field {
	entries := make([]model.Field, 0, len(d.Fields)+2)
	for _, f := range d.Fields {
		if pair, ok := f.(model.TextPairField); ok {
			left, right := pair.Split()
			entries = append(entries, left, right)
			continue
		}
		entries = append(entries, f)
	}
	return entries
}

// Entry finds a flattened entry by name.
func (d *Definition) Entry(name string) (model.Field, bool) {
	for _, e := range d.Entries() {
		if e.Base().Name == name {
			return e, true
		}
	}
	return nil, false
}

// Localize returns copies of fields with labels and placeholders passed
// through tr. Options keep their canonical text: they are the submitted
// values, translation happens at display time.
func Localize(fields []model.Field, tr func(string) string) []model.Field {
	out := make([]model.Field, len(fields))
	for i, f := range fields {
		switch f := f.(type) {
		case model.TextField:
			f.Label, f.Placeholder = tr(f.Label), tr(f.Placeholder)
			out[i] = f
		case model.TextAreaField:
			f.Label, f.Placeholder = tr(f.Label), tr(f.Placeholder)
			out[i] = f
		case model.MultiSelectField:
			f.Label = tr(f.Label)
			out[i] = f
		case model.TextPairField:
			f.Label = tr(f.Label)
			f.Left.Label, f.Left.Placeholder = tr(f.Left.Label), tr(f.Left.Placeholder)
			f.Right.Label, f.Right.Placeholder = tr(f.Right.Label), tr(f.Right.Placeholder)
			out[i] = f
		default:
			out[i] = f
		}
	}
	return out
}
