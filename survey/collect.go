package survey

import (
	"net/url"
	"strings"

	"github.com/mbolis/interview-survey/model"
)

// Collect builds the answer set of a submitted form. Selections are trimmed
// and canonicalized; "other" values are kept verbatim apart from trimming,
// since they are not drawn from the options. Neither may contain the chip
// separator, which becomes a full-width comma.
func Collect(fields []model.Field, form url.Values) model.AnswerSet {
	answers := model.NewAnswerSet()
	for _, f := range fields {
		switch f := f.(type) {
		case model.MultiSelectField:
			selected := []string{}
			for _, v := range form[f.Name] {
				v = strings.TrimSpace(v)
				if v == "" {
					continue
				}
				selected = append(selected, unchip(Canonicalize(f, v)))
			}
			answers.SetSelected(f.Name, selected)
			if f.AllowOther {
				answers.SetText(f.OtherName(), unchip(strings.TrimSpace(form.Get(f.OtherName()))))
			}
		case model.TextPairField:
			answers.SetText(f.Left.Name, strings.TrimSpace(form.Get(f.Left.Name)))
			answers.SetText(f.Right.Name, strings.TrimSpace(form.Get(f.Right.Name)))
		default:
			name := f.Base().Name
			answers.SetText(name, strings.TrimSpace(form.Get(name)))
		}
	}
	return answers
}

func unchip(v string) string {
	return strings.ReplaceAll(v, model.ChipSeparator, "，")
}
