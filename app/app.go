package app

import (
	"database/sql"
	"time"

	"github.com/go-chi/oauth"
	"github.com/mbolis/interview-survey/config"
	"github.com/mbolis/interview-survey/database"
	"github.com/mbolis/interview-survey/i18n"
	"github.com/mbolis/interview-survey/report"
	"github.com/mbolis/interview-survey/survey"
	"github.com/mbolis/interview-survey/views"
)

// App is everything a handler needs. It is built once in main and never
// modified afterwards.
type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config

	Survey    *survey.Definition
	Window    survey.Window
	Responses *database.Responses
	Catalog   *i18n.Catalog
	Reports   *report.Builder
	Views     *views.Views
	Now       func() time.Time
}

// Tr translates key into lang.
func (app App) Tr(key string, lang i18n.Lang) string {
	return app.Catalog.Tr(key, lang)
}
