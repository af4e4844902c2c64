package survey

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mbolis/interview-survey/model"
)

func text(name, label string) model.Field {
	return model.TextField{FieldBase: model.FieldBase{Name: name, Label: label}}
}

func multi(name, label string) model.Field {
	return model.MultiSelectField{FieldBase: model.FieldBase{Name: name, Label: label}, Options: []string{"x"}}
}

func rowNames(rows []model.DisplayRow) [][]string {
	out := [][]string{}
	for _, row := range rows {
		names := []string{}
		for _, f := range row {
			names = append(names, f.Base().Name)
		}
		out = append(out, names)
	}
	return out
}

func TestGroup(t *testing.T) {
	tests := []struct {
		name   string
		fields []model.Field
		want   [][]string
	}{
		{
			name:   "empty",
			fields: nil,
			want:   [][]string{},
		},
		{
			name: "pair run breaks on main index",
			fields: []model.Field{
				multi("a", "4-1. A"),
				multi("b", "4-2. B"),
				multi("c", "5-1. C"),
			},
			want: [][]string{{"a", "b"}, {"c"}},
		},
		{
			name: "plain fields two per row",
			fields: []model.Field{
				multi("a", "1. A"),
				multi("b", "2. B"),
				multi("c", "3. C"),
			},
			want: [][]string{{"a", "b"}, {"c"}},
		},
		{
			name: "pending plain field flushed before a pair group",
			fields: []model.Field{
				multi("a", "3. A"),
				multi("b", "4-1. B"),
				multi("c", "4-2. C"),
				multi("d", "7. D"),
			},
			want: [][]string{{"a"}, {"b", "c"}, {"d"}},
		},
		{
			name: "odd pair group ends with a single row",
			fields: []model.Field{
				multi("a", "6-1. A"),
				multi("b", "6-2. B"),
				multi("c", "6-3. C"),
				multi("d", "8. D"),
				text("e", "Notes"),
			},
			want: [][]string{{"a", "b"}, {"c"}, {"d", "e"}},
		},
		{
			name: "run stops at a plain field with the same main index",
			fields: []model.Field{
				multi("a", "4-1. A"),
				multi("b", "4. B"),
				multi("c", "4-2. C"),
			},
			want: [][]string{{"a"}, {"b"}, {"c"}},
		},
		{
			name: "labels without index are plain",
			fields: []model.Field{
				text("a", "備註"),
				text("b", "  2-1 missing dot"),
				text("c", "x. y"),
			},
			want: [][]string{{"a", "b"}, {"c"}},
		},
		{
			name: "grouping ignores kind",
			fields: []model.Field{
				text("a", "9-1. A"),
				multi("b", "9-2. B"),
			},
			want: [][]string{{"a", "b"}},
		},
		{
			name: "leading whitespace in label",
			fields: []model.Field{
				multi("a", "  9-1. A"),
				multi("b", "9-2. B"),
			},
			want: [][]string{{"a", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rowNames(Group(tt.fields))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Group() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupKeepsEveryFieldOnceInOrder(t *testing.T) {
	def, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	fields := def.QuestionnaireFields()

	var flat []string
	for _, row := range Group(fields) {
		if len(row) < 1 || len(row) > 2 {
			t.Errorf("row of size %d", len(row))
		}
		for _, f := range row {
			flat = append(flat, f.Base().Name)
		}
	}

	var want []string
	for _, f := range fields {
		want = append(want, f.Base().Name)
	}
	if diff := cmp.Diff(want, flat); diff != "" {
		t.Errorf("flattened rows mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupDefaultQuestionnaire(t *testing.T) {
	def, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"core_flows", "test_types"},
		{"scenarios"},
		{"run_frequency", "run_environment"},
		{"browser_targets", "device_targets"},
		{"roles", "account_method"},
		{"report_needs", "integrations"},
		{"poc_scope", "poc_acceptance"},
		{"notes"},
	}
	if diff := cmp.Diff(want, rowNames(Group(def.QuestionnaireFields()))); diff != "" {
		t.Errorf("default layout mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitQuestionIndex(t *testing.T) {
	tests := []struct {
		label, index, text string
	}{
		{"4-1. 測試執行頻率", "4-1", "測試執行頻率"},
		{"1. Automation Core Flows", "1", "Automation Core Flows"},
		{"補充說明", "", "補充說明"},
	}
	for _, tt := range tests {
		index, text := SplitQuestionIndex(tt.label)
		if index != tt.index || text != tt.text {
			t.Errorf("SplitQuestionIndex(%q) = %q, %q; want %q, %q", tt.label, index, text, tt.index, tt.text)
		}
	}
}
