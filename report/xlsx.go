package report

import (
	"io"

	"github.com/mbolis/interview-survey/model"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Sheet1"

// WriteXLSX writes the same table as WriteCSV as a single sheet workbook.
func (b *Builder) WriteXLSX(w io.Writer, recs []model.ResponseRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range b.Table(recs) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "report.xlsx.cell")
		}
		if err = f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return errors.Wrap(err, "report.xlsx.row")
		}
	}

	return errors.Wrap(f.Write(w), "report.xlsx.write")
}

// ReadXLSX reads every row of the first sheet of a workbook.
func ReadXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "report.xlsx.open")
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("report.xlsx.read: no worksheet found")
	}
	rows, err := f.GetRows(sheet)
	return rows, errors.Wrap(err, "report.xlsx.read")
}
