package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NoDateLabel 文件名中找不到日期时的标签
const NoDateLabel = "(날짜 없음)"

var filenameDateRe = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`)

// ToDateInt 将日期单元格转为 YYYYMMDD 整数
// 去掉 "." 分隔符；空值、"nan"、无法解析或负数一律返回 0，不会报错
func ToDateInt(value string) int {
	s := strings.TrimSpace(strings.ReplaceAll(value, ".", ""))
	if s == "" || strings.EqualFold(s, "nan") {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FilenameDate 从文件名中提取第一个 YYYYMMDD 数字串
// 返回展示标签 "(YYYY.MM.DD.)" 与参考日期；找不到时 ok=false，调用方应使用当天日期
func FilenameDate(filename string) (label string, ref int, ok bool) {
	m := filenameDateRe.FindStringSubmatch(filename)
	if len(m) < 4 {
		return NoDateLabel, 0, false
	}
	ref, _ = strconv.Atoi(m[1] + m[2] + m[3])
	return fmt.Sprintf("(%s.%s.%s.)", m[1], m[2], m[3]), ref, true
}

// TodayDateInt 当天日期的 YYYYMMDD 形式
func TodayDateInt(now time.Time) int {
	n, _ := strconv.Atoi(now.Format("20060102"))
	return n
}
