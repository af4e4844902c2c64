package survey

import (
	"regexp"
	"strings"

	"github.com/mbolis/interview-survey/model"
)

var reIndex = regexp.MustCompile(`^(\d+)(?:-(\d+))?\.`)

// indexParts extracts the "main" and optional "sub" display index from a
// label like "4-1. Something". ok is false when the label carries no index.
func indexParts(label string) (main, sub string, ok bool) {
	m := reIndex.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// Group lays fields out in rows. A run of sub-indexed fields sharing the
// same main index ("4-1.", "4-2.") is paired two per row; any other field is
// paired with the next such field.
func Group(fields []model.Field) []model.DisplayRow {
	var rows []model.DisplayRow
	var pending model.DisplayRow

	flush := func() {
		if len(pending) > 0 {
			rows = append(rows, pending)
			pending = nil
		}
	}

	for i := 0; i < len(fields); {
		main, sub, _ := indexParts(fields[i].Base().Label)
		if sub == "" {
			pending = append(pending, fields[i])
			if len(pending) == 2 {
				flush()
			}
			i++
			continue
		}

		flush()
		j := i + 1
		for j < len(fields) {
			nextMain, nextSub, _ := indexParts(fields[j].Base().Label)
			if nextSub == "" || nextMain != main {
				break
			}
			j++
		}
		for k := i; k < j; k += 2 {
			end := k + 2
			if end > j {
				end = j
			}
			rows = append(rows, append(model.DisplayRow{}, fields[k:end]...))
		}
		i = j
	}
	flush()

	return rows
}

// SplitQuestionIndex separates a leading "4-1." style index from the label
// text. Labels without an index return an empty index and the label.
func SplitQuestionIndex(label string) (index, text string) {
	m := reQuestion.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return "", label
	}
	return m[1], m[2]
}

var reQuestion = regexp.MustCompile(`^(\d+(?:-\d+)?)\.\s*(.+)$`)
