package parser

import "strings"

// noiseToken 原始职位名后缀的法人标注，基准表中不出现
const noiseToken = "(주)"

// Normalize 规范化职位名：压缩连续空白为单个空格并去除首尾空白
// 按 Unicode 空白切分，NBSP、全角空格同样折叠
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ComparisonForm 比较用形式：去掉所有空格以及 "(주)" 标注
// 只移除 U+0020，其他空白保持原样
func ComparisonForm(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, noiseToken, "")
}

// NormalizeColumnName 规范化列名（仅去除首尾空白，列内空格有语义，如 "보 직 명"）
func NormalizeColumnName(name string) string {
	return strings.TrimSpace(name)
}

// ContainsCell 检查行中是否存在与目标一致的单元格（忽略首尾空白）
func ContainsCell(row []string, want string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) == want {
			return true
		}
	}
	return false
}

// cellAt 安全读取单元格；excelize 返回的行会截掉末尾空单元格
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
