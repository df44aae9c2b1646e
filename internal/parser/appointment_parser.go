package parser

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"officeholders/internal/model"
)

// 人事导出表必需列
const (
	ColPosition  = "발령직위"
	ColStartDate = "발령시작일"
	ColEndDate   = "발령종료일"
	ColName      = "성명"
)

// DefaultHeaderScanRows 表头查找的行数上限
const DefaultHeaderScanRows = 10

// AppointmentOptions 人事导出表解析选项
type AppointmentOptions struct {
	Sheet          string // 为空时使用第一个 sheet
	HeaderSentinel string // 为空时使用 "성명"
	HeaderScanRows int    // <=0 时使用 DefaultHeaderScanRows
}

// AppointmentParser 人事导出表解析器
type AppointmentParser struct {
	file *excelize.File
	opts AppointmentOptions
}

// NewAppointmentParser 创建解析器
func NewAppointmentParser(file *excelize.File, opts AppointmentOptions) *AppointmentParser {
	if opts.HeaderSentinel == "" {
		opts.HeaderSentinel = ColName
	}
	if opts.HeaderScanRows <= 0 {
		opts.HeaderScanRows = DefaultHeaderScanRows
	}
	return &AppointmentParser{file: file, opts: opts}
}

// AppointmentSheet 解析结果
type AppointmentSheet struct {
	Sheet     string
	HeaderRow int // 0 起
	Records   []model.RawAppointment
}

// Parse 读取并解析全部任命记录
func (p *AppointmentParser) Parse() (*AppointmentSheet, error) {
	sheet := p.opts.Sheet
	sheets := p.file.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	} else if !containsString(sheets, sheet) {
		return nil, &MissingSheetError{Sheet: sheet, Available: sheets}
	}

	rows, err := p.file.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}

	headerIdx := FindHeaderRow(rows, p.opts.HeaderSentinel, p.opts.HeaderScanRows)
	if headerIdx < 0 {
		return nil, &MissingHeaderError{
			Sheet:       sheet,
			Sentinel:    p.opts.HeaderSentinel,
			ScannedRows: p.opts.HeaderScanRows,
		}
	}

	cols := NewColumnIndex(rows[headerIdx])
	if missing := cols.Require(ColPosition, ColStartDate, ColEndDate, ColName); len(missing) > 0 {
		return nil, &MissingColumnError{Sheet: sheet, Missing: missing, Available: cols.Names()}
	}

	posIdx, _ := cols.Lookup(ColPosition)
	startIdx, _ := cols.Lookup(ColStartDate)
	endIdx, _ := cols.Lookup(ColEndDate)
	nameIdx, _ := cols.Lookup(ColName)

	records := make([]model.RawAppointment, 0, len(rows)-headerIdx-1)
	for rowIdx := headerIdx + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if isBlankRow(row) {
			continue
		}
		records = append(records, NewRawAppointment(
			rowIdx+1,
			cellAt(row, posIdx),
			cellAt(row, nameIdx),
			cellAt(row, startIdx),
			cellAt(row, endIdx),
		))
	}

	return &AppointmentSheet{Sheet: sheet, HeaderRow: headerIdx, Records: records}, nil
}

// NewRawAppointment 由原始单元格文本构造任命记录
// 结束日无法解析时记为 model.OpenEndDate
func NewRawAppointment(rowNo int, position, name, start, end string) model.RawAppointment {
	endInt := ToDateInt(end)
	if endInt <= 0 {
		endInt = model.OpenEndDate
	}
	return model.RawAppointment{
		RowNo:        rowNo,
		Position:     strings.TrimSpace(position),
		PersonName:   strings.TrimSpace(name),
		StartRaw:     strings.TrimSpace(start),
		EndRaw:       strings.TrimSpace(end),
		StartDateInt: ToDateInt(start),
		EndDateInt:   endInt,
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
