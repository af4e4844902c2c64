package report

import (
	"sort"
	"strconv"
	"strings"
)

const DefaultPerPage = 10

var PerPageOptions = []int{10, 20, 50}

type Summary struct {
	Total       int    `json:"total_submissions"`
	Departments int    `json:"department_count"`
	Latest      string `json:"latest_submitted_at"`
}

// Summarize counts records and distinct departments. records are expected
// latest first.
func Summarize(records []Record) Summary {
	departments := map[string]bool{}
	for _, r := range records {
		if r.Department != "" && r.Department != Empty {
			departments[r.Department] = true
		}
	}

	s := Summary{
		Total:       len(records),
		Departments: len(departments),
		Latest:      Empty,
	}
	if len(records) > 0 {
		s.Latest = records[0].Submitted
	}
	return s
}

// FilterByDate keeps the records submitted on date ("2006-01-02"). An empty
// date keeps everything.
func FilterByDate(records []Record, date string) []Record {
	if date == "" {
		return records
	}
	filtered := []Record{}
	for _, r := range records {
		if r.Date == date {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// AvailableDates lists the distinct submission dates, latest first.
func AvailableDates(records []Record) []string {
	seen := map[string]bool{}
	dates := []string{}
	for _, r := range records {
		if r.Date == "" || r.Date == Empty || seen[r.Date] {
			continue
		}
		seen[r.Date] = true
		dates = append(dates, r.Date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

type Page struct {
	Records    []Record
	Number     int
	TotalPages int
	PerPage    int
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.TotalPages }
func (p Page) Prev() int {
	if p.HasPrev() {
		return p.Number - 1
	}
	return 1
}
func (p Page) Next() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.TotalPages
}

// Paginate returns page number (1-based, clamped) of records. There is
// always at least one page.
func Paginate(records []Record, number, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	p := Page{Records: []Record{}, Number: 1, TotalPages: 1, PerPage: perPage}
	if len(records) == 0 {
		return p
	}

	p.TotalPages = (len(records) + perPage - 1) / perPage
	p.Number = min(max(number, 1), p.TotalPages)
	start := (p.Number - 1) * perPage
	end := min(start+perPage, len(records))
	p.Records = records[start:end]
	return p
}

// PositiveInt parses raw, returning def for anything but a positive integer.
func PositiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// ParsePerPage accepts only the allowed page sizes.
func ParsePerPage(raw string) int {
	n := PositiveInt(raw, DefaultPerPage)
	for _, allowed := range PerPageOptions {
		if n == allowed {
			return n
		}
	}
	return DefaultPerPage
}
