package report

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/mbolis/interview-survey/i18n"
	"github.com/mbolis/interview-survey/log"
	"github.com/mbolis/interview-survey/model"
	"github.com/mbolis/interview-survey/survey"
	"github.com/pkg/errors"
)

const bom = "\ufeff"

// Exports are always written in the source language, so that they can be
// imported back.
const exportLang = i18n.ZhTW

const (
	columnSubmitted  = "提交時間"
	columnDepartment = "訪談部門"
	columnPerson     = "訪談人員"
	columnSystem     = "主測系統"
	columnRole       = "主測角色"
)

var basicColumns = []string{columnSubmitted, columnDepartment, columnPerson, columnSystem, columnRole}

var importTimeLayouts = []string{"2006-01-02 15:04:05", "2006/01/02 15:04:05"}

// details are the entries exported after the basic columns.
func (b *Builder) details() []model.Field {
	var details []model.Field
	for _, e := range b.entries {
		switch e.Base().Name {
		case model.FieldDepartment, model.FieldPerson, model.FieldSystem, model.FieldRole:
			continue
		}
		details = append(details, e)
	}
	return details
}

// Table lays records out as a header row followed by one row per record.
// It is the shape of every tabular export.
func (b *Builder) Table(recs []model.ResponseRecord) [][]string {
	details := b.details()

	header := append([]string{}, basicColumns...)
	for _, e := range details {
		header = append(header, e.Base().Label)
	}

	table := [][]string{header}
	for _, rec := range recs {
		r := b.Record(rec, exportLang)
		row := []string{r.Submitted, r.Department, r.Person, r.System, r.Role}
		for _, e := range details {
			row = append(row, b.Value(e, rec.Answers, exportLang))
		}
		table = append(table, row)
	}
	return table
}

// WriteCSV writes the records as UTF-8 CSV with a byte order mark, which
// spreadsheet programs need to detect the encoding.
func (b *Builder) WriteCSV(w io.Writer, recs []model.ResponseRecord) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return errors.Wrap(err, "report.csv.bom")
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(b.Table(recs)); err != nil {
		return errors.Wrap(err, "report.csv.write")
	}
	return nil
}

// ReadCSV reads every row of a CSV file, skipping a leading byte order mark.
func ReadCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, []byte(bom)) {
		br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	return rows, errors.Wrap(err, "report.csv.read")
}

// Imported is one row of an import, ready for the store.
type Imported struct {
	Answers     model.AnswerSet
	SubmittedAt time.Time
}

// ParseTable is the inverse of Table. Columns are matched by header label
// and may come in any order, and the empty placeholder reads as no value.
// Rows without department or person are skipped; an unreadable submission
// time becomes now.
func (b *Builder) ParseTable(table [][]string, now time.Time) []Imported {
	if len(table) == 0 {
		return nil
	}

	columns := map[string]int{}
	for i, h := range table[0] {
		columns[strings.TrimSpace(strings.TrimPrefix(h, bom))] = i
	}
	cell := func(row []string, label string) string {
		i, ok := columns[label]
		if !ok || i >= len(row) {
			return ""
		}
		if v := strings.TrimSpace(row[i]); v != Empty {
			return v
		}
		return ""
	}

	details := b.details()
	imported := []Imported{}
	for n, row := range table[1:] {
		answers := model.NewAnswerSet()
		answers.SetText(model.FieldDepartment, cell(row, columnDepartment))
		answers.SetText(model.FieldPerson, cell(row, columnPerson))
		answers.SetText(model.FieldSystem, cell(row, columnSystem))
		answers.SetText(model.FieldRole, cell(row, columnRole))

		for _, e := range details {
			raw := cell(row, e.Base().Label)
			ms, ok := e.(model.MultiSelectField)
			if !ok {
				answers.SetText(e.Base().Name, raw)
				continue
			}

			selected, other := SplitChips(raw)
			for i, v := range selected {
				selected[i] = survey.CanonicalOption(ms.Options, v)
			}
			answers.SetSelected(ms.Name, selected)
			if ms.AllowOther {
				answers.SetText(ms.OtherName(), other)
			}
		}

		if !answers.Key().Valid() {
			log.Debugf("report.import: row %d: missing department or person", n+2)
			continue
		}
		imported = append(imported, Imported{
			Answers:     answers,
			SubmittedAt: parseImportTime(cell(row, columnSubmitted), now),
		})
	}
	return imported
}

// SplitChips is the inverse of joining chips: it returns the selections and
// the "other" value of a multi-select cell.
func SplitChips(value string) (selected []string, other string) {
	selected = []string{}
	value = strings.TrimSpace(value)
	if value == "" || value == Empty {
		return selected, ""
	}

	for _, part := range strings.Split(value, ChipSeparator) {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
		case strings.HasPrefix(part, OtherPrefix):
			other = strings.TrimSpace(strings.TrimPrefix(part, OtherPrefix))
		case strings.HasPrefix(strings.ToLower(part), "other:"):
			other = strings.TrimSpace(part[len("other:"):])
		default:
			selected = append(selected, part)
		}
	}
	return selected, other
}

func parseImportTime(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == Empty {
		return now
	}
	for _, layout := range importTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t
		}
	}
	return now
}

// Upserter is the part of the response store an import writes to.
type Upserter interface {
	Upsert(ctx context.Context, answers model.AnswerSet, submittedAt time.Time) error
}

// Import writes every importable row of table and returns how many were
// stored.
func (b *Builder) Import(ctx context.Context, store Upserter, table [][]string, now time.Time) (int, error) {
	count := 0
	for _, row := range b.ParseTable(table, now) {
		if err := store.Upsert(ctx, row.Answers, row.SubmittedAt); err != nil {
			return count, errors.Wrap(err, "report.import")
		}
		count++
	}
	return count, nil
}
