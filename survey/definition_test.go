package survey

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mbolis/interview-survey/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDefinition(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "at", def.Slug)
	assert.Equal(t, "自動化測試導入 PoC 需求訪談表", def.Title)
	assert.Len(t, def.BasicFields(), 2)
	assert.Len(t, def.QuestionnaireFields(), 14)

	entries := def.Entries()
	require.Len(t, entries, 18)
	assert.Equal(t, model.FieldDepartment, entries[0].Base().Name)
	assert.Equal(t, model.SectionBasic, entries[0].Base().Section)
	assert.Equal(t, model.KindText, entries[0].Kind())
	assert.Equal(t, model.FieldRole, entries[3].Base().Name)

	notes, ok := def.Entry("notes")
	require.True(t, ok)
	assert.Equal(t, model.KindTextArea, notes.Kind())

	_, ok = def.Entry("nope")
	assert.False(t, ok)
}

func TestParseReportsEveryViolation(t *testing.T) {
	_, err := Parse([]byte(`
slug: s
fields:
  - type: multiselect
    name: a
    label: A
    allow_other: true
    options: [登入→送出, 登入送出, x, x]
  - type: text
    name: a_other
  - type: multiselect
    name: b
  - type: radio
    name: c
`))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "indistinguishable")
	assert.Contains(t, msg, `duplicate option "x"`)
	assert.Contains(t, msg, `duplicate name "a_other"`)
	assert.Contains(t, msg, "multiselect without options")
	assert.Contains(t, msg, `unknown type "radio"`)
	assert.Contains(t, msg, `missing required input "department_name"`)
	assert.Contains(t, msg, `missing required input "person_name"`)
}

func TestParseTextPairNeedsBothHalves(t *testing.T) {
	_, err := Parse([]byte(`
slug: s
fields:
  - type: text_pair
    name: p
    left: {name: department_name}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs both left and right")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "def.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
slug: demo
title: Demo
fields:
  - type: text
    section: basic
    name: department_name
  - type: text
    section: basic
    name: person_name
`), 0o644))

	def, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", def.Slug)
	assert.Empty(t, def.QuestionnaireFields())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLocalizeKeepsOptions(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)

	upper := func(s string) string { return "<" + s + ">" }
	localized := Localize(def.Fields, upper)

	pair := localized[0].(model.TextPairField)
	assert.Equal(t, "<訪談部門>", pair.Left.Label)
	assert.Equal(t, "<例如：王小明>", pair.Right.Placeholder)

	core := localized[2].(model.MultiSelectField)
	assert.Equal(t, "<1. 自動化核心流程>", core.Label)
	assert.Equal(t, "登入→主功能操作→送出", core.Options[0])

	assert.Equal(t, "1. 自動化核心流程", def.Fields[2].Base().Label, "source definition untouched")
}

func TestCollect(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)

	form := url.Values{
		"department_name":  {" 研發部 "},
		"person_name":      {"王小明"},
		"core_flows":       {"登入主功能操作送出", " ", "自訂流程"},
		"core_flows_other": {"  匯出→報表  "},
		"notes":            {"  hello "},
	}
	answers := Collect(def.Fields, form)

	assert.Equal(t, "研發部", answers.Text(model.FieldDepartment))
	assert.Equal(t, "", answers.Text(model.FieldSystem))
	assert.Equal(t, []string{"登入→主功能操作→送出", "自訂流程"}, answers.Selected("core_flows"))
	assert.Equal(t, "匯出→報表", answers.Text("core_flows_other"), "other values are not canonicalized")
	assert.Equal(t, "hello", answers.Text("notes"))
	assert.Equal(t, []string{}, answers.Selected("test_types"))
	assert.True(t, answers.Has("test_types_other"))
	assert.Equal(t, model.NaturalKey{Department: "研發部", Person: "王小明"}, answers.Key())
}

func TestDefaultWindow(t *testing.T) {
	// Thursday
	today := time.Date(2026, 2, 19, 15, 30, 0, 0, time.UTC)
	w := DefaultWindow(today)

	assert.Equal(t, time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC), w.Start)
	// Thu, Fri, Mon, Tue, Wed
	assert.Equal(t, time.Date(2026, 2, 25, 23, 59, 59, 0, time.UTC), w.End)
	assert.True(t, w.Open(today))
	assert.False(t, w.Open(w.End.Add(time.Second)))
	assert.False(t, w.Open(w.Start.Add(-time.Second)))

	// Saturday start still counts five workdays
	w = DefaultWindow(time.Date(2026, 2, 21, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC), w.End)
}

func TestLoadWindow(t *testing.T) {
	now := time.Date(2026, 2, 16, 10, 0, 0, 0, time.UTC)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"open_start_at": "2026-03-01 09:00", "open_end_at": "2026-03-05 18:30"}`), 0o644))
	w, err := LoadWindow(good, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 3, 5, 18, 30, 0, 0, time.UTC), w.End)

	inverted := filepath.Join(dir, "inverted.json")
	require.NoError(t, os.WriteFile(inverted, []byte(`{"open_start_at": "2026-03-05 09:00", "open_end_at": "2026-03-01 18:30"}`), 0o644))
	w, err = LoadWindow(inverted, now)
	assert.Error(t, err)
	assert.Equal(t, DefaultWindow(now), w)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{`), 0o644))
	w, err = LoadWindow(broken, now)
	assert.Error(t, err)
	assert.Equal(t, DefaultWindow(now), w)

	w, err = LoadWindow(filepath.Join(dir, "missing.json"), now)
	assert.NoError(t, err)
	assert.Equal(t, DefaultWindow(now), w)
}
