package routes

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mbolis/interview-survey/app"
	"github.com/mbolis/interview-survey/httpx"
	"github.com/mbolis/interview-survey/i18n"
	"github.com/mbolis/interview-survey/log"
	"github.com/mbolis/interview-survey/report"
	"github.com/mbolis/interview-survey/views"
	"github.com/pkg/errors"
)

const (
	reportPath     = "/admin/report"
	maxImportBytes = 10 << 20
)

// reportQuery is the state of the report page, carried through every link
// and form on it.
type reportQuery struct {
	Lang    i18n.Lang
	Date    string
	Page    int
	PerPage int
}

// A missing date means today; an empty one means every date.
func parseReportQuery(r *http.Request, values func(string) (string, bool), today string) reportQuery {
	q := reportQuery{Lang: requestLang(r), Date: today}
	if date, ok := values("date"); ok {
		q.Date = strings.TrimSpace(date)
	}
	page, _ := values("page")
	q.Page = report.PositiveInt(page, 1)
	perPage, _ := values("per_page")
	q.PerPage = report.ParsePerPage(perPage)
	return q
}

func (q reportQuery) url(page int, extra ...string) string {
	pairs := []string{
		"lang", string(q.Lang),
		"date", q.Date,
		"page", strconv.Itoa(page),
		"per_page", strconv.Itoa(q.PerPage),
	}
	return withQuery(reportPath, append(pairs, extra...)...)
}

func AdminReport(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		q := parseReportQuery(r, func(key string) (string, bool) {
			return query.Get(key), query.Has(key)
		}, app.Now().Format(report.DateLayout))
		setLangCookie(w, q.Lang)

		recs, err := app.Responses.ListAll(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.list_responses", err)
			return
		}
		all := app.Reports.Records(recs, q.Lang)
		filtered := report.FilterByDate(all, q.Date)
		page := report.Paginate(filtered, q.Page, q.PerPage)
		q.Page = page.Number

		data := views.ReportData{
			Common: views.Common{
				L:           app.Catalog.For(q.Lang),
				SurveyTitle: app.Tr(app.Survey.Title, q.Lang),
				LangURLs: langURLs(reportPath,
					"date", q.Date,
					"page", strconv.Itoa(q.Page),
					"per_page", strconv.Itoa(q.PerPage),
				),
			},
			Summary:             report.Summarize(filtered),
			Page:                page,
			SelectedDate:        q.Date,
			SelectedDateDisplay: report.FormatFilterDate(q.Date, q.Lang),
			AvailableDates:      report.AvailableDates(all),
			PerPageOptions:      report.PerPageOptions,
			HasRecords:          len(all) > 0,
			PrevURL:             q.url(page.Prev()),
			NextURL:             q.url(page.Next()),
			ExportCSV:           reportPath + "/export.csv",
			ExportPDF:           reportPath + "/export.pdf",
			ExportXLSX:          reportPath + "/export.xlsx",
		}
		if n, err := strconv.Atoi(query.Get("imported")); err == nil {
			data.Notice = strings.ReplaceAll(app.Tr("import_result", q.Lang), "{count}", strconv.Itoa(n))
		}

		if err = app.Views.Render(w, http.StatusOK, views.PageReport, data); err != nil {
			httpx.LogInternalError(w, "views.report", err)
		}
	}
}

// ListRecords is the JSON form of the report, optionally for a single date.
func ListRecords(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := requestLang(r)

		recs, err := app.Responses.ListAll(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.list_responses", err)
			return
		}
		records := app.Reports.Records(recs, lang)
		if date := r.URL.Query().Get("date"); date != "" {
			records = report.FilterByDate(records, date)
		}

		render.JSON(w, r, map[string]any{
			"summary": report.Summarize(records),
			"records": records,
		})
	}
}

func attachment(w http.ResponseWriter, app app.App, contentType, ext string) {
	filename := fmt.Sprintf("survey-report-%s.%s", app.Now().Format("20060102-150405"), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
}

func ExportCSV(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := app.Responses.ListAll(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.list_responses", err)
			return
		}

		attachment(w, app, "text/csv; charset=utf-8", "csv")
		if err = app.Reports.WriteCSV(w, recs); err != nil {
			log.Errorf("report.export_csv: %s", err)
		}
	}
}

func ExportXLSX(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := app.Responses.ListAll(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.list_responses", err)
			return
		}

		attachment(w, app, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx")
		if err = app.Reports.WriteXLSX(w, recs); err != nil {
			log.Errorf("report.export_xlsx: %s", err)
		}
	}
}

func ExportPDF(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := app.Responses.ListAll(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.list_responses", err)
			return
		}
		records := app.Reports.Records(recs, i18n.ZhTW)

		buf := httpx.NewResponseBuffer()
		pdf := report.PDF{Title: app.Survey.Title, FontPath: app.Config.PDFFont}
		err = pdf.Write(buf, records, report.Summarize(records))
		if errors.Is(err, report.ErrNoFont) {
			httpx.LogStatusMsg(w, http.StatusInternalServerError, log.ErrorLevel, "report.export_pdf", "%s", err)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "report.export_pdf", err)
			return
		}

		attachment(w, app, "application/pdf", "pdf")
		buf.Flush(w)
	}
}

func ImportRecords(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_multipart")
			return
		}
		q := parseReportQuery(r, func(key string) (string, bool) {
			_, ok := r.PostForm[key]
			return r.PostFormValue(key), ok
		}, app.Now().Format(report.DateLayout))

		file, header, err := r.FormFile("import_file")
		if errors.Is(err, http.ErrMissingFile) {
			httpx.Redirect(w, r, "import.no_file", q.url(q.Page))
			return
		}
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.form_file")
			return
		}
		defer file.Close()

		var table [][]string
		if strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
			table, err = report.ReadXLSX(file)
		} else {
			table, err = report.ReadCSV(file)
		}
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "import.read", "cannot read %s", header.Filename)
			return
		}

		count, err := app.Reports.Import(r.Context(), app.Responses, table, app.Now())
		if err != nil {
			httpx.LogInternalError(w, "db.import", err)
			return
		}
		log.WithFields(log.Fields{"file": header.Filename, "count": count}).Info("import: done")

		httpx.Redirect(w, r, "import.done", q.url(q.Page, "imported", strconv.Itoa(count)))
	}
}

func deleteResponse(app app.App, w http.ResponseWriter, r *http.Request) (deleted bool, ok bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
		return false, false
	}

	deleted, err = app.Responses.Delete(r.Context(), id)
	if err != nil {
		httpx.LogInternalError(w, "db.delete_response", err)
		return false, false
	}
	if deleted {
		log.WithFields(log.Fields{"id": id}).Info("delete_response: done")
	} else {
		log.Debugf("delete_response: not found (%d)", id)
	}
	return deleted, true
}

// DeleteRecord serves the delete buttons of the report page, then goes back
// to the page the button was on.
func DeleteRecord(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_form")
			return
		}
		if _, ok := deleteResponse(app, w, r); !ok {
			return
		}

		q := parseReportQuery(r, func(key string) (string, bool) {
			_, ok := r.PostForm[key]
			return r.PostFormValue(key), ok
		}, app.Now().Format(report.DateLayout))
		httpx.Redirect(w, r, "delete_response", q.url(q.Page))
	}
}

func ApiDeleteRecord(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, ok := deleteResponse(app, w, r)
		if !ok {
			return
		}
		if !deleted {
			httpx.LogNotFound(w, "delete_response", chi.URLParam(r, "id"), http.StatusText(http.StatusNotFound))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
