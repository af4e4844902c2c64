package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbolis/interview-survey/app"
	"github.com/mbolis/interview-survey/config"
	"github.com/mbolis/interview-survey/database"
	"github.com/mbolis/interview-survey/httpx"
	"github.com/mbolis/interview-survey/i18n"
	"github.com/mbolis/interview-survey/log"
	"github.com/mbolis/interview-survey/report"
	"github.com/mbolis/interview-survey/routes"
	"github.com/mbolis/interview-survey/survey"
	"github.com/mbolis/interview-survey/views"
	"github.com/pkg/errors"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal("main.config: ", err)
	}
	log.SetFormat(cfg.LogFormat)
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open: ", err)
	}
	defer db.Close()

	if cfg.AdminUser != "" {
		if err = database.EnsureAdmin(context.Background(), db, cfg.AdminUser, cfg.AdminPassword); err != nil {
			log.Fatal("main.db.ensure_admin: ", err)
		}
	}

	def, err := loadSurvey(cfg)
	if err != nil {
		log.Fatal("main.survey: ", err)
	}
	window, err := survey.LoadWindow(cfg.WindowFile, time.Now())
	if err != nil {
		log.Warnf("main.survey_window: %s, using the default window", err)
	}

	if cfg.PDFFont, err = report.ResolveFont(cfg.PDFFont, report.SystemFonts); err != nil {
		log.Warnf("main.pdf_font: %s; PDF export is disabled", err)
	}

	catalog, err := i18n.Load()
	if err != nil {
		log.Fatal("main.i18n: ", err)
	}
	tmpl, err := views.Load()
	if err != nil {
		log.Fatal("main.views: ", err)
	}

	app := app.App{
		DB:           db,
		BearerServer: httpx.NewBearerServer(db, cfg),
		Config:       cfg,
		Survey:       def,
		Window:       window,
		Responses:    database.NewResponses(db, def.Slug),
		Catalog:      catalog,
		Reports:      report.NewBuilder(def, catalog),
		Views:        tmpl,
		Now:          time.Now,
	}

	log.WithFields(log.Fields{
		"survey": def.Title,
		"open":   window.Start.Format("2006-01-02 15:04") + " ~ " + window.End.Format("2006-01-02 15:04"),
		"url":    cfg.Url() + "/q/" + def.Slug,
	}).Info("main: survey ready")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = runServer(ctx, cfg, routes.Wire(app))
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server: ", err)
	}
	log.Info("main: bye")
}

func loadSurvey(cfg config.Config) (*survey.Definition, error) {
	if cfg.SurveyFile == "" {
		return survey.Default()
	}
	return survey.LoadFile(cfg.SurveyFile)
}

// runServer serves until ctx is done, then gives in-flight requests a few
// seconds to finish.
func runServer(ctx context.Context, cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening on " + cfg.Url())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
