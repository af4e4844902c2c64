package views

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mbolis/interview-survey/i18n"
	"github.com/mbolis/interview-survey/model"
	"github.com/mbolis/interview-survey/report"
	"github.com/mbolis/interview-survey/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func common(t *testing.T, lang i18n.Lang) Common {
	t.Helper()
	catalog, err := i18n.Load()
	require.NoError(t, err)
	return Common{
		L:           catalog.For(lang),
		SurveyTitle: "問卷",
		LangURLs:    map[string]string{"zh-TW": "/q/at?lang=zh-TW", "en": "/q/at?lang=en"},
	}
}

func TestLoad(t *testing.T) {
	v, err := Load()
	require.NoError(t, err)
	assert.Len(t, v.pages, len(pages))
}

func TestRenderUnknownPage(t *testing.T) {
	v, err := Load()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	assert.EqualError(t, v.Render(rec, http.StatusOK, "nope", nil), `views.render: unknown page "nope"`)
	assert.Equal(t, 0, rec.Body.Len())
}

func TestRenderForm(t *testing.T) {
	v, err := Load()
	require.NoError(t, err)
	def, err := survey.Default()
	require.NoError(t, err)

	existing := model.NewAnswerSet()
	existing.SetText(model.FieldDepartment, "研發部")
	existing.SetSelected("core_flows", []string{"查詢→檢視→匯出"})
	existing.SetText("core_flows_other", "<script>")

	rec := httptest.NewRecorder()
	err = v.Render(rec, http.StatusOK, PageForm, FormData{
		Common:   common(t, i18n.ZhTW),
		Action:   "/q/at?lang=zh-TW",
		Window:   FormatWindow(survey.DefaultWindow(time.Date(2026, 2, 19, 0, 0, 0, 0, time.Local)), i18n.ZhTW),
		Basic:    def.BasicFields(),
		Rows:     survey.Group(def.QuestionnaireFields()),
		Existing: existing,
		Error:    "請先填寫",
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, `<html lang="zh-Hant">`)
	assert.Contains(t, body, `name="department_name" value="研發部"`)
	assert.Contains(t, body, `value="查詢→檢視→匯出" checked`)
	assert.NotContains(t, body, `value="登入→主功能操作→送出" checked`)
	assert.Contains(t, body, `name="core_flows_other" value="&lt;script&gt;"`)
	assert.Contains(t, body, "2026/02/19 00:00 ~ 2026/02/25 23:59")
	assert.Contains(t, body, "請先填寫")
	assert.Contains(t, body, `name="notes"`)
}

func TestRenderFormTranslatesOptionsOnly(t *testing.T) {
	v, err := Load()
	require.NoError(t, err)
	def, err := survey.Default()
	require.NoError(t, err)

	c := common(t, i18n.En)
	rec := httptest.NewRecorder()
	err = v.Render(rec, http.StatusOK, PageForm, FormData{
		Common:   c,
		Rows:     survey.Group(survey.Localize(def.QuestionnaireFields(), c.L.T)),
		Existing: model.NewAnswerSet(),
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Contains(t, body, `value="登入→主功能操作→送出"> Login → Main Action → Submit`)
	assert.Contains(t, body, "Submit / Update")
}

func TestRenderClosed(t *testing.T) {
	v, err := Load()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = v.Render(rec, http.StatusGone, PageClosed, ClosedData{
		Common:  common(t, i18n.En),
		Title:   "Survey Submission Window Closed",
		Message: "closed",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Survey Submission Window Closed</title>")
}

func TestRenderReport(t *testing.T) {
	v, err := Load()
	require.NoError(t, err)

	records := []report.Record{{
		ID:         3,
		Submitted:  "2026/02/19 09:00:00",
		Department: "研發部",
		Person:     "王小明",
		QuestionnaireItems: []report.Item{
			{Label: "1. 核心", QuestionIndex: "1", QuestionText: "核心", Chips: []string{"A", "B"}},
		},
	}}
	rec := httptest.NewRecorder()
	err = v.Render(rec, http.StatusOK, PageReport, ReportData{
		Common:         common(t, i18n.ZhTW),
		Summary:        report.Summarize(records),
		Page:           report.Paginate(records, 1, 10),
		PerPageOptions: report.PerPageOptions,
		HasRecords:     true,
		Notice:         "已匯入 1 筆資料",
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Contains(t, body, `action="/admin/report/delete/3"`)
	assert.Contains(t, body, `<span class="chip">A</span><span class="chip">B</span>`)
	assert.Contains(t, body, "確認要刪除此 研發部 部門 王小明 人員的資料嗎?")
	assert.Contains(t, body, `<option value="10" selected>10</option>`)
	assert.Contains(t, body, "已匯入 1 筆資料")
	assert.NotContains(t, body, "目前沒有提交資料")
}

func TestRenderEmptyReport(t *testing.T) {
	v, err := Load()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = v.Render(rec, http.StatusOK, PageReport, ReportData{
		Common:         common(t, i18n.ZhTW),
		Page:           report.Paginate(nil, 1, 10),
		PerPageOptions: report.PerPageOptions,
	})
	require.NoError(t, err)
	assert.Contains(t, rec.Body.String(), "目前沒有提交資料")
}

func TestRenderLogin(t *testing.T) {
	v, err := Load()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = v.Render(rec, http.StatusUnauthorized, PageLogin, LoginData{
		Common: common(t, i18n.En),
		Goto:   "/admin/report?page=2",
		Error:  "Invalid username or password",
	})
	require.NoError(t, err)
	body := rec.Body.String()
	assert.Contains(t, body, `name="goto" value="/admin/report?page=2"`)
	assert.Contains(t, body, "Invalid username or password")
}
