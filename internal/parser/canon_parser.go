package parser

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"officeholders/internal/model"
)

// 基准表
const (
	DefaultCanonSheet = "rule"
	ColCategory       = "구분"
	ColCanonPosition  = "보 직 명"
)

// ParseCanon 读取基准表，按文件顺序返回
func ParseCanon(file *excelize.File, sheet string) ([]model.CanonEntry, error) {
	if sheet == "" {
		sheet = DefaultCanonSheet
	}
	sheets := file.GetSheetList()
	if !containsString(sheets, sheet) {
		return nil, &MissingSheetError{Sheet: sheet, Available: sheets}
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	if len(rows) == 0 {
		return nil, &MissingColumnError{Sheet: sheet, Missing: []string{ColCategory, ColCanonPosition}}
	}

	cols := NewColumnIndex(rows[0])
	if missing := cols.Require(ColCategory, ColCanonPosition); len(missing) > 0 {
		return nil, &MissingColumnError{Sheet: sheet, Missing: missing, Available: cols.Names()}
	}
	catIdx, _ := cols.Lookup(ColCategory)
	posIdx, _ := cols.Lookup(ColCanonPosition)

	// 末尾空行不计入；中间空行保留为空条目，占据报表中的一个位置
	last := len(rows) - 1
	for last > 0 && isBlankEntry(rows[last], catIdx, posIdx) {
		last--
	}

	entries := make([]model.CanonEntry, 0, last)
	for rowIdx := 1; rowIdx <= last; rowIdx++ {
		entries = append(entries, model.CanonEntry{
			RowNo:    rowIdx + 1,
			Category: strings.TrimSpace(cellAt(rows[rowIdx], catIdx)),
			Position: strings.TrimSpace(cellAt(rows[rowIdx], posIdx)),
		})
	}
	return entries, nil
}

func isBlankEntry(row []string, catIdx, posIdx int) bool {
	return strings.TrimSpace(cellAt(row, catIdx)) == "" && strings.TrimSpace(cellAt(row, posIdx)) == ""
}
