package routes

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/mbolis/interview-survey/app"
	"github.com/mbolis/interview-survey/log"
	"github.com/mbolis/interview-survey/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(
		middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log.Logger, NoColor: true}),
		middleware.Recoverer,
	)

	root.Get("/", Home(app))
	root.Get("/q/{slug}", SurveyForm(app))
	root.Post("/q/{slug}", SubmitSurvey(app))

	root.Get("/login", LoginPage(app))
	root.Post("/login", LoginSubmit(app))
	root.Post("/logout", Logout(app))

	root.Mount("/api", apiRouter(app))
	root.Mount("/admin", adminRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/survey", GetSurvey(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.Config.TokenSecret))

		r.Get("/records", ListRecords(app))
		r.Delete(`/records/{id:^\d+$}`, ApiDeleteRecord(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}

func adminRouter(app app.App) http.Handler {
	admin := chi.NewRouter()
	admin.Use(middlewares.CookieAuth(app.BearerServer), middlewares.Admin(app.Config.TokenSecret))

	admin.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, reportPath, http.StatusSeeOther)
	})
	admin.Get("/report", AdminReport(app))
	admin.Get("/report/export.csv", ExportCSV(app))
	admin.Get("/report/export.pdf", ExportPDF(app))
	admin.Get("/report/export.xlsx", ExportXLSX(app))
	admin.Post("/report/import.csv", ImportRecords(app))
	admin.Post(`/report/delete/{id:^\d+$}`, DeleteRecord(app))

	return admin
}
