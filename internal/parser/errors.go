package parser

import (
	"fmt"
	"strings"
)

// MissingHeaderError 在前若干行中找不到表头哨兵单元格
type MissingHeaderError struct {
	Sheet       string
	Sentinel    string
	ScannedRows int
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("header row with %q not found in first %d rows of sheet %q", e.Sentinel, e.ScannedRows, e.Sheet)
}

// MissingColumnError 表头中缺少必需列
type MissingColumnError struct {
	Sheet     string
	Missing   []string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("sheet %q missing columns [%s]; available columns [%s]",
		e.Sheet, strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
}

// MissingSheetError 工作簿中缺少指定 sheet
type MissingSheetError struct {
	Sheet     string
	Available []string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("sheet %q not found; available sheets [%s]", e.Sheet, strings.Join(e.Available, ", "))
}
