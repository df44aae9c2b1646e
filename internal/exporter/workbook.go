package exporter

import (
	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"officeholders/internal/model"
)

// ReportSheet xlsx 报表的 sheet 名
const ReportSheet = "보직자현황"

// BuildWorkbook 将报表渲染为 8 列工作簿：标题行、日期行、表头行、数据行
func BuildWorkbook(report *model.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "rename sheet")
	}
	if err := fillReportSheet(f, report); err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook 渲染并保存 xlsx
func WriteWorkbook(path string, report *model.Report) error {
	f, err := BuildWorkbook(report)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return errors.Wrap(err, "serialize workbook")
	}
	return writeFileAtomic(path, buf.Bytes())
}

func fillReportSheet(f *excelize.File, report *model.Report) error {
	sheet := ReportSheet

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return errors.Wrap(err, "title style")
	}
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return errors.Wrap(err, "header style")
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return errors.Wrap(err, "body style")
	}

	// 标题（合并 A1:H1）与日期（右对齐在 H2）
	if err := f.SetCellValue(sheet, "A1", report.Title); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", "H1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "H1", titleStyle); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "H2", report.Date); err != nil {
		return err
	}

	header := make([]interface{}, 0, 8)
	for _, h := range report.Headers.Left {
		header = append(header, h)
	}
	for _, h := range report.Headers.Right {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A3", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A3", "H3", headerStyle); err != nil {
		return err
	}

	for i, row := range report.Rows {
		values := []interface{}{
			row.Left.Category, row.Left.Position, row.Left.Name, row.Left.Period,
			row.Right.Category, row.Right.Position, row.Right.Name, row.Right.Period,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	if n := len(report.Rows); n > 0 {
		last, err := excelize.CoordinatesToCellName(8, n+3)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A4", last, bodyStyle); err != nil {
			return err
		}
	}

	widths := map[string]float64{"A": 12, "B": 24, "C": 10, "D": 24, "E": 12, "F": 24, "G": 10, "H": 24}
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}
