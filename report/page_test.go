package report

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func records(dates ...string) []Record {
	out := make([]Record, len(dates))
	for i, d := range dates {
		out[i] = Record{
			ID:         int64(i + 1),
			Date:       d,
			Submitted:  d + " 10:00:00",
			Department: fmt.Sprintf("dept-%d", i%2),
		}
	}
	return out
}

func ids(records []Record) []int64 {
	out := []int64{}
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestSummarize(t *testing.T) {
	recs := records("2026-02-20", "2026-02-19", "2026-02-19")
	recs = append(recs, Record{Department: Empty})

	assert.Equal(t, Summary{Total: 4, Departments: 2, Latest: "2026-02-20 10:00:00"}, Summarize(recs))
	assert.Equal(t, Summary{Total: 0, Departments: 0, Latest: Empty}, Summarize(nil))
}

func TestFilterByDate(t *testing.T) {
	recs := records("2026-02-20", "2026-02-19", "2026-02-19")

	assert.Equal(t, []int64{2, 3}, ids(FilterByDate(recs, "2026-02-19")))
	assert.Equal(t, []int64{}, ids(FilterByDate(recs, "2026-01-01")))
	assert.Equal(t, []int64{1, 2, 3}, ids(FilterByDate(recs, "")))
}

func TestAvailableDates(t *testing.T) {
	recs := records("2026-02-19", "2026-02-21", Empty, "2026-02-19", "2026-02-20")

	if diff := cmp.Diff([]string{"2026-02-21", "2026-02-20", "2026-02-19"}, AvailableDates(recs)); diff != "" {
		t.Errorf("AvailableDates() mismatch (-want +got):\n%s", diff)
	}
}

func TestPaginate(t *testing.T) {
	recs := records(make([]string, 25)...)

	tests := []struct {
		name       string
		page       int
		perPage    int
		wantIDs    []int64
		wantNumber int
		wantTotal  int
	}{
		{"first", 1, 10, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 1, 3},
		{"last partial", 3, 10, []int64{21, 22, 23, 24, 25}, 3, 3},
		{"past the end", 9, 10, []int64{21, 22, 23, 24, 25}, 3, 3},
		{"before the start", -2, 20, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, 1, 2},
		{"bad page size", 3, 0, []int64{21, 22, 23, 24, 25}, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(recs, tt.page, tt.perPage)
			assert.Equal(t, tt.wantIDs, ids(p.Records))
			assert.Equal(t, tt.wantNumber, p.Number)
			assert.Equal(t, tt.wantTotal, p.TotalPages)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 4, 10)
	assert.Empty(t, p.Records)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasPrev())
	assert.False(t, p.HasNext())
	assert.Equal(t, 1, p.Prev())
	assert.Equal(t, 1, p.Next())
}

func TestPageNavigation(t *testing.T) {
	p := Paginate(records(make([]string, 25)...), 2, 10)
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.Prev())
	assert.Equal(t, 3, p.Next())
}

func TestParsePerPage(t *testing.T) {
	tests := map[string]int{
		"":    10,
		"10":  10,
		"20":  20,
		" 50": 50,
		"30":  10,
		"-20": 10,
		"abc": 10,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParsePerPage(raw), "ParsePerPage(%q)", raw)
	}
}

func TestPositiveInt(t *testing.T) {
	assert.Equal(t, 3, PositiveInt("3", 1))
	assert.Equal(t, 1, PositiveInt("0", 1))
	assert.Equal(t, 1, PositiveInt("x", 1))
}
