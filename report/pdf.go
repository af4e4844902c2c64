package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// Page geometry, in points.
const (
	pdfLeft         = 40.0
	pdfTop          = 40.0
	pdfBottomMargin = 45.0
	pdfLineStep     = 14.0
	pdfRecordGap    = 6.0
	pdfMaxRunes     = 120
)

const pdfFontFamily = "report"

// SystemFonts are TrueType files with CJK coverage shipped by common systems.
// fpdf reads plain .ttf only, so .ttc collections are not listed.
var SystemFonts = []string{
	"/usr/share/fonts/truetype/arphic-bsmi00lp/bsmi00lp.ttf",
	"/usr/share/fonts/truetype/arphic-bkai00mp/bkai00mp.ttf",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/truetype/noto/NotoSansTC-Regular.ttf",
	"/usr/share/fonts/google-droid/DroidSansFallback.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	`C:\Windows\Fonts\kaiu.ttf`,
	`C:\Windows\Fonts\simhei.ttf`,
}

// ErrNoFont is returned when no CJK font is available for the PDF export.
var ErrNoFont = errors.New("no CJK font for PDF export, set -pdf-font to a TrueType file")

// ResolveFont returns the configured font, or the first of candidates that
// exists on disk.
func ResolveFont(configured string, candidates []string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrNoFont
}

// PDF renders report records with the TrueType font at FontPath.
type PDF struct {
	Title    string
	FontPath string
}

// Write renders the summary and one line group per record. Every label is
// Chinese, so a missing font is an error rather than unreadable output.
func (p PDF) Write(w io.Writer, records []Record, summary Summary) error {
	if p.FontPath == "" {
		return ErrNoFont
	}
	if _, err := os.Stat(p.FontPath); err != nil {
		return errors.Wrap(err, "report.pdf.font")
	}
	doc := p.build(records, summary)
	if err := doc.Error(); err != nil {
		return errors.Wrap(err, "report.pdf.build")
	}
	return errors.Wrap(doc.Output(w), "report.pdf.write")
}

func (p PDF) build(records []Record, summary Summary) *fpdf.Fpdf {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(p.Title, true)
	doc.SetCreator("interview-survey", true)

	// core Helvetica only lays out pages, it draws CJK runes as dots
	family := "Helvetica"
	text := doc.UnicodeTranslatorFromDescriptor("")
	if p.FontPath != "" {
		doc.AddUTF8Font(pdfFontFamily, "", p.FontPath)
		if doc.Err() {
			return doc
		}
		family = pdfFontFamily
		text = func(s string) string { return s }
	}

	_, pageHeight := doc.GetPageSize()
	y := pdfTop
	doc.AddPage()

	doc.SetFont(family, "", 14)
	doc.Text(pdfLeft, y, text(truncate("管理者報表｜"+p.Title, pdfMaxRunes)))
	y += 24

	doc.SetFont(family, "", 10)
	for _, line := range []string{
		fmt.Sprintf("提交總筆數：%d", summary.Total),
		fmt.Sprintf("部門數：%d", summary.Departments),
		fmt.Sprintf("最新提交時間：%s", summary.Latest),
	} {
		doc.Text(pdfLeft, y, text(line))
		y += 16
	}
	y += 8

	for i, r := range records {
		lines := []string{
			fmt.Sprintf("[%d] 提交時間：%s", i+1, r.Submitted),
			fmt.Sprintf("部門：%s｜訪談人員：%s", r.Department, r.Person),
			fmt.Sprintf("主測系統：%s｜主測角色：%s", r.System, r.Role),
		}
		for _, item := range r.QuestionnaireItems {
			lines = append(lines, fmt.Sprintf("- %s：%s", item.Label, item.Value))
		}

		for _, line := range lines {
			if y > pageHeight-pdfBottomMargin {
				doc.AddPage()
				doc.SetFont(family, "", 10)
				y = pdfTop
			}
			doc.Text(pdfLeft, y, text(truncate(line, pdfMaxRunes)))
			y += pdfLineStep
		}
		y += pdfRecordGap
	}
	return doc
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
