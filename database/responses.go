package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/mbolis/interview-survey/log"
	"github.com/mbolis/interview-survey/model"
	"github.com/pkg/errors"
)

// TimeLayout is how submitted_at is persisted: local time, seconds
// precision, so lexical order is chronological order.
const TimeLayout = "2006-01-02T15:04:05"

var ErrMissingKey = errors.New("department and person are required")

// Responses stores one response per (survey, department, person).
type Responses struct {
	db   *sql.DB
	slug string
	Now  func() time.Time
}

func NewResponses(db *sql.DB, slug string) *Responses {
	return &Responses{db: db, slug: slug, Now: time.Now}
}

// Upsert inserts the response of the respondent identified by answers, or
// overwrites the existing one. A zero submittedAt means now.
func (s *Responses) Upsert(ctx context.Context, answers model.AnswerSet, submittedAt time.Time) error {
	key := answers.Key()
	if !key.Valid() {
		return ErrMissingKey
	}
	if submittedAt.IsZero() {
		submittedAt = s.Now()
	}

	payload, err := json.Marshal(answers)
	if err != nil {
		return errors.Wrap(err, "db.upsert_response.encode")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO response (survey_slug, department_name, person_name, answers_json, submitted_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (survey_slug, department_name, person_name)
		DO UPDATE SET
			answers_json = excluded.answers_json,
			submitted_at = excluded.submitted_at`,
		s.slug,
		key.Department,
		key.Person,
		string(payload),
		submittedAt.Local().Format(TimeLayout),
	)
	return errors.Wrap(err, "db.upsert_response")
}

// ListAll returns every response, latest first.
func (s *Responses) ListAll(ctx context.Context) ([]model.ResponseRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, department_name, person_name, answers_json, submitted_at
		FROM response
		WHERE survey_slug = ?
		ORDER BY submitted_at DESC, id DESC`,
		s.slug,
	)
	if err != nil {
		return nil, errors.Wrap(err, "db.list_responses")
	}
	defer rows.Close()

	records := []model.ResponseRecord{}
	for rows.Next() {
		var rec model.ResponseRecord
		var payload, submitted string
		err = rows.Scan(&rec.ID, &rec.Key.Department, &rec.Key.Person, &payload, &submitted)
		if err != nil {
			return nil, errors.Wrap(err, "db.list_responses.scan")
		}

		rec.Answers, err = model.DecodeAnswers(payload)
		if err != nil {
			log.Debugf("db.list_responses.parse_answers: id=%d: %s", rec.ID, err)
		}
		rec.SubmittedAt, err = time.ParseInLocation(TimeLayout, submitted, time.Local)
		if err != nil {
			log.Debugf("db.list_responses.parse_time: id=%d: %s", rec.ID, err)
		}

		records = append(records, rec)
	}
	return records, errors.Wrap(rows.Err(), "db.list_responses.next")
}

// Delete removes one response, reporting whether it existed.
func (s *Responses) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM response
		WHERE survey_slug = ?
			AND id = ?`,
		s.slug,
		id,
	)
	if err != nil {
		return false, errors.Wrap(err, "db.delete_response")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "db.delete_response.verify")
	}
	return n > 0, nil
}
