// Package views renders the HTML pages. Templates are embedded and parsed
// once at startup.
package views

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/mbolis/interview-survey/i18n"
	"github.com/mbolis/interview-survey/model"
	"github.com/mbolis/interview-survey/report"
	"github.com/mbolis/interview-survey/survey"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templates embed.FS

const (
	PageForm    = "form"
	PageSuccess = "success"
	PageClosed  = "closed"
	PageReport  = "report"
	PageLogin   = "login"
)

var pages = []string{PageForm, PageSuccess, PageClosed, PageReport, PageLogin}

type Views struct {
	pages map[string]*template.Template
}

// FieldContext is what the field template renders.
type FieldContext struct {
	F model.Field
	A model.AnswerSet
	L i18n.Localizer
}

var funcs = template.FuncMap{
	"field": func(f model.Field, a model.AnswerSet, l i18n.Localizer) FieldContext {
		return FieldContext{F: f, A: a, L: l}
	},
	"isSelected": func(a model.AnswerSet, name, option string) bool {
		for _, v := range a.Selected(name) {
			if v == option {
				return true
			}
		}
		return false
	},
	"answer": func(a model.AnswerSet, name string) string {
		return a.Text(name)
	},
	"fill": func(tmpl string, pairs ...string) string {
		return strings.NewReplacer(pairs...).Replace(tmpl)
	},
	"questionIndex": func(label string) string {
		index, _ := survey.SplitQuestionIndex(label)
		return index
	},
	"questionText": func(label string) string {
		_, text := survey.SplitQuestionIndex(label)
		return text
	},
}

// Load parses every page together with the shared layout.
func Load() (*Views, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templates, "templates/layout.html")
	if err != nil {
		return nil, errors.Wrap(err, "views.parse layout")
	}

	v := &Views{pages: map[string]*template.Template{}}
	for _, page := range pages {
		t, err := template.Must(layout.Clone()).ParseFS(templates, "templates/"+page+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "views.parse %s", page)
		}
		v.pages[page] = t
	}
	return v, nil
}

// Render executes page into a buffer first, so that a template error never
// leaves a half written response.
func (v *Views) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := v.pages[page]
	if !ok {
		return errors.Errorf("views.render: unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return errors.Wrapf(err, "views.render %s", page)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Common is shared by every page.
type Common struct {
	L           i18n.Localizer
	SurveyTitle string
	// LangURLs maps a language code to this page in that language.
	LangURLs map[string]string
}

// Window is the open window, formatted for lang.
type Window struct {
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
}

func FormatWindow(w survey.Window, lang i18n.Lang) Window {
	return Window{
		StartDate: report.FormatDate(w.Start, lang),
		StartTime: w.Start.Format("15:04"),
		EndDate:   report.FormatDate(w.End, lang),
		EndTime:   w.End.Format("15:04"),
	}
}

type FormData struct {
	Common
	Action   string
	Window   Window
	Basic    []model.Field
	Rows     []model.DisplayRow
	Existing model.AnswerSet
	Error    string
}

type SuccessData struct {
	Common
	Message   string
	SurveyURL string
}

type ClosedData struct {
	Common
	Title   string
	Message string
	Window  Window
}

type ReportData struct {
	Common
	Summary             report.Summary
	Page                report.Page
	SelectedDate        string
	SelectedDateDisplay string
	AvailableDates      []string
	PerPageOptions      []int
	HasRecords          bool
	PrevURL, NextURL    string
	ExportCSV           string
	ExportPDF           string
	ExportXLSX          string
	Notice              string
}

type LoginData struct {
	Common
	Goto  string
	Error string
}
