package survey

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

const windowLayout = "2006-01-02 15:04"

// Window is the period in which submissions are accepted.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Open(now time.Time) bool {
	return !now.Before(w.Start) && !now.After(w.End)
}

// DefaultWindow opens at the start of today and closes at the end of the
// fifth workday, today included.
func DefaultWindow(today time.Time) Window {
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	end := addWorkdays(start, 5)
	return Window{
		Start: start,
		End:   time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, today.Location()),
	}
}

func addWorkdays(start time.Time, workdays int) time.Time {
	current := start
	counted := 0
	for {
		if wd := current.Weekday(); wd != time.Saturday && wd != time.Sunday {
			counted++
			if counted == workdays {
				return current
			}
		}
		current = current.AddDate(0, 0, 1)
	}
}

type windowFile struct {
	OpenStartAt string `json:"open_start_at"`
	OpenEndAt   string `json:"open_end_at"`
}

// ReadWindow parses a window file of the form
// {"open_start_at": "2026-02-16 09:00", "open_end_at": "2026-02-20 18:00"}.
func ReadWindow(path string, loc *time.Location) (Window, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Window{}, errors.Wrap(err, "survey.window.read")
	}
	var wf windowFile
	if err := json.Unmarshal(raw, &wf); err != nil {
		return Window{}, errors.Wrap(err, "survey.window.parse")
	}
	start, err := time.ParseInLocation(windowLayout, wf.OpenStartAt, loc)
	if err != nil {
		return Window{}, errors.Wrap(err, "survey.window.open_start_at")
	}
	end, err := time.ParseInLocation(windowLayout, wf.OpenEndAt, loc)
	if err != nil {
		return Window{}, errors.Wrap(err, "survey.window.open_end_at")
	}
	if end.Before(start) {
		return Window{}, errors.New("survey.window: open_end_at before open_start_at")
	}
	return Window{Start: start, End: end}, nil
}

// LoadWindow reads the window file at path, falling back to DefaultWindow
// when path is empty, missing or invalid. The returned error, if any,
// explains the fallback and is meant for logging only.
func LoadWindow(path string, now time.Time) (Window, error) {
	if path == "" {
		return DefaultWindow(now), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultWindow(now), nil
	}
	w, err := ReadWindow(path, now.Location())
	if err != nil {
		return DefaultWindow(now), err
	}
	return w, nil
}
