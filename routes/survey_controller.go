package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mbolis/interview-survey/app"
	"github.com/mbolis/interview-survey/httpx"
	"github.com/mbolis/interview-survey/i18n"
	"github.com/mbolis/interview-survey/log"
	"github.com/mbolis/interview-survey/model"
	"github.com/mbolis/interview-survey/survey"
	"github.com/mbolis/interview-survey/views"
)

func surveyPath(app app.App) string {
	return "/q/" + app.Survey.Slug
}

func Home(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := requestLang(r)
		httpx.Redirect(w, r, "home", withQuery(surveyPath(app), "lang", string(lang)))
	}
}

// surveyPage answers the requests on the survey URL: unknown slugs are 404,
// a closed survey is 410, anything else is handed to next.
func surveyPage(app app.App, next func(w http.ResponseWriter, r *http.Request, lang i18n.Lang, c views.Common)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := requestLang(r)
		slug := chi.URLParam(r, "slug")
		if slug != app.Survey.Slug {
			httpx.LogNotFound(w, "survey.slug", slug, app.Tr("survey_not_found", lang))
			return
		}
		setLangCookie(w, lang)

		c := views.Common{
			L:           app.Catalog.For(lang),
			SurveyTitle: app.Tr(app.Survey.Title, lang),
			LangURLs:    langURLs(surveyPath(app)),
		}

		if !app.Window.Open(app.Now()) {
			log.Debugf("survey.closed: %s", r.Method)
			err := app.Views.Render(w, http.StatusGone, views.PageClosed, views.ClosedData{
				Common:  c,
				Title:   app.Tr(app.Survey.ClosedTitle, lang),
				Message: app.Tr(app.Survey.ClosedBody, lang),
				Window:  views.FormatWindow(app.Window, lang),
			})
			if err != nil {
				httpx.LogInternalError(w, "views.closed", err)
			}
			return
		}

		next(w, r, lang, c)
	}
}

func formData(app app.App, lang i18n.Lang, c views.Common, existing model.AnswerSet) views.FormData {
	tr := c.L.T
	return views.FormData{
		Common:   c,
		Action:   withQuery(surveyPath(app), "lang", string(lang)),
		Window:   views.FormatWindow(app.Window, lang),
		Basic:    survey.Localize(app.Survey.BasicFields(), tr),
		Rows:     survey.Group(survey.Localize(app.Survey.QuestionnaireFields(), tr)),
		Existing: existing,
	}
}

func SurveyForm(app app.App) http.HandlerFunc {
	return surveyPage(app, func(w http.ResponseWriter, r *http.Request, lang i18n.Lang, c views.Common) {
		err := app.Views.Render(w, http.StatusOK, views.PageForm, formData(app, lang, c, model.NewAnswerSet()))
		if err != nil {
			httpx.LogInternalError(w, "views.form", err)
		}
	})
}

func SubmitSurvey(app app.App) http.HandlerFunc {
	return surveyPage(app, func(w http.ResponseWriter, r *http.Request, lang i18n.Lang, c views.Common) {
		if err := r.ParseForm(); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_form")
			return
		}

		answers := survey.Collect(app.Survey.Fields, r.PostForm)
		if !answers.Key().Valid() {
			log.Debug("survey.submit: missing natural key")
			data := formData(app, lang, c, answers)
			data.Error = app.Tr("error_missing_key", lang)
			if err := app.Views.Render(w, http.StatusOK, views.PageForm, data); err != nil {
				httpx.LogInternalError(w, "views.form", err)
			}
			return
		}

		if err := app.Responses.Upsert(r.Context(), answers, app.Now()); err != nil {
			httpx.LogInternalError(w, "db.upsert_response", err)
			return
		}
		key := answers.Key()
		log.WithFields(log.Fields{"department": key.Department, "person": key.Person}).Info("survey.submit: saved")

		err := app.Views.Render(w, http.StatusOK, views.PageSuccess, views.SuccessData{
			Common:    c,
			Message:   app.Tr(app.Survey.SuccessMessage, lang),
			SurveyURL: withQuery(surveyPath(app), "lang", string(lang)),
		})
		if err != nil {
			httpx.LogInternalError(w, "views.success", err)
		}
	})
}

// GetSurvey describes the survey for API clients, localized like the form.
func GetSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := requestLang(r)
		tr := func(key string) string { return app.Tr(key, lang) }

		render.JSON(w, r, map[string]any{
			"slug":   app.Survey.Slug,
			"title":  tr(app.Survey.Title),
			"lang":   lang,
			"open":   app.Window.Open(app.Now()),
			"window": views.FormatWindow(app.Window, lang),
			"basic":  survey.Localize(app.Survey.BasicFields(), tr),
			"rows":   survey.Group(survey.Localize(app.Survey.QuestionnaireFields(), tr)),
		})
	}
}
