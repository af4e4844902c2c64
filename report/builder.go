// Package report turns stored responses into localized display data. The
// same Builder feeds the HTML report, the JSON API and every exporter, so
// the presentations can never disagree on formatting.
package report

import (
	"strings"
	"time"

	"github.com/mbolis/interview-survey/i18n"
	"github.com/mbolis/interview-survey/model"
	"github.com/mbolis/interview-survey/survey"
)

const (
	// ChipSeparator is what import splits multi-select cells on.
	ChipSeparator = model.ChipSeparator
	// Empty stands in for a missing value.
	Empty = "—"
	// OtherPrefix is the source text of the label put in front of an
	// "other" value.
	OtherPrefix = "其他："

	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

type Item struct {
	Name          string   `json:"name"`
	Label         string   `json:"label"`
	Value         string   `json:"value"`
	Chips         []string `json:"chips"`
	QuestionIndex string   `json:"question_index"`
	QuestionText  string   `json:"question_text"`
}

type Record struct {
	ID                 int64           `json:"id"`
	SubmittedAt        time.Time       `json:"-"`
	Submitted          string          `json:"submitted_at"`
	Date               string          `json:"submitted_date"`
	Time               string          `json:"submitted_time"`
	Department         string          `json:"department_name"`
	Person             string          `json:"person_name"`
	System             string          `json:"main_system"`
	Role               string          `json:"main_role"`
	BasicItems         []Item          `json:"basic_items"`
	QuestionnaireItems []Item          `json:"questionnaire_items"`
	Answers            model.AnswerSet `json:"answers"`
}

type Builder struct {
	entries []model.Field
	catalog *i18n.Catalog
}

func NewBuilder(def *survey.Definition, catalog *i18n.Catalog) *Builder {
	return &Builder{
		entries: def.Entries(),
		catalog: catalog,
	}
}

// Entries are the flattened fields every report is built from.
func (b *Builder) Entries() []model.Field {
	return b.entries
}

// Chips returns the display units of one answer: the selected options
// (canonicalized, then translated) plus an "other" chip, or the text of a
// text entry.
func (b *Builder) Chips(entry model.Field, answers model.AnswerSet, lang i18n.Lang) []string {
	ms, ok := entry.(model.MultiSelectField)
	if !ok {
		text := strings.TrimSpace(answers.Text(entry.Base().Name))
		if text == "" {
			return nil
		}
		return []string{b.catalog.Message(text, lang)}
	}

	var chips []string
	for _, v := range answers.Selected(ms.Name) {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		chips = append(chips, b.catalog.Tr(survey.CanonicalOption(ms.Options, v), lang))
	}
	if ms.AllowOther {
		if other := strings.TrimSpace(answers.Text(ms.OtherName())); other != "" {
			chips = append(chips, b.catalog.Tr(OtherPrefix, lang)+" "+other)
		}
	}
	return chips
}

// Value is the single string form of an answer.
func (b *Builder) Value(entry model.Field, answers model.AnswerSet, lang i18n.Lang) string {
	chips := b.Chips(entry, answers, lang)
	if len(chips) == 0 {
		return Empty
	}
	return strings.Join(chips, ChipSeparator)
}

func (b *Builder) Item(entry model.Field, answers model.AnswerSet, lang i18n.Lang) Item {
	label := b.catalog.Tr(entry.Base().Label, lang)
	index, text := survey.SplitQuestionIndex(label)

	chips := b.Chips(entry, answers, lang)
	value := Empty
	if len(chips) > 0 {
		value = strings.Join(chips, ChipSeparator)
	} else {
		chips = []string{Empty}
	}

	return Item{
		Name:          entry.Base().Name,
		Label:         label,
		Value:         value,
		Chips:         chips,
		QuestionIndex: index,
		QuestionText:  text,
	}
}

func (b *Builder) Record(rec model.ResponseRecord, lang i18n.Lang) Record {
	r := Record{
		ID:          rec.ID,
		SubmittedAt: rec.SubmittedAt,
		Submitted:   FormatDateTime(rec.SubmittedAt, lang),
		Date:        Empty,
		Time:        Empty,
		Department:  orEmpty(rec.Answers.Text(model.FieldDepartment)),
		Person:      orEmpty(rec.Answers.Text(model.FieldPerson)),
		System:      orEmpty(rec.Answers.Text(model.FieldSystem)),
		Role:        orEmpty(rec.Answers.Text(model.FieldRole)),
		Answers:     rec.Answers,
	}
	r.BasicItems = []Item{}
	r.QuestionnaireItems = []Item{}
	if !rec.SubmittedAt.IsZero() {
		r.Date = rec.SubmittedAt.Format(DateLayout)
		r.Time = rec.SubmittedAt.Format(TimeLayout)
	}

	for _, entry := range b.entries {
		item := b.Item(entry, rec.Answers, lang)
		if entry.Base().Section == model.SectionBasic {
			r.BasicItems = append(r.BasicItems, item)
		} else {
			r.QuestionnaireItems = append(r.QuestionnaireItems, item)
		}
	}
	return r
}

func (b *Builder) Records(recs []model.ResponseRecord, lang i18n.Lang) []Record {
	out := make([]Record, len(recs))
	for i, rec := range recs {
		out[i] = b.Record(rec, lang)
	}
	return out
}

func orEmpty(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return Empty
	}
	return s
}

// FormatDate renders a date the way lang writes it.
func FormatDate(t time.Time, lang i18n.Lang) string {
	if lang == i18n.En {
		return t.Format("Jan 02, 2006")
	}
	return t.Format("2006/01/02")
}

func FormatDateTime(t time.Time, lang i18n.Lang) string {
	if t.IsZero() {
		return Empty
	}
	return FormatDate(t, lang) + " " + t.Format(TimeLayout)
}

// FormatFilterDate renders a "2006-01-02" filter value for display, or
// returns it unchanged when it does not parse.
func FormatFilterDate(date string, lang i18n.Lang) string {
	if date == "" {
		return ""
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return FormatDate(t, lang)
}
