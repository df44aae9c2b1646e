// Package report 在任记录筛选与"교원 보직자 현황"报表构建
package report

import (
	"sort"
	"strings"

	"officeholders/internal/model"
)

// FilterActive 筛选参考日在任的记录，并按开始日倒序（最近任命在前）稳定排序
// 开始日无法解析（0）的记录总是视为已开始
// 匹配器依赖该顺序做同分裁决，不要在下游重新排序
func FilterActive(records []model.RawAppointment, ref int) []model.RawAppointment {
	active := make([]model.RawAppointment, 0, len(records))
	for _, r := range records {
		if r.ActiveOn(ref) {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].StartDateInt > active[j].StartDateInt
	})
	return active
}

// WithPosition 去掉职位名为空的记录，保持顺序
func WithPosition(records []model.RawAppointment) []model.RawAppointment {
	out := make([]model.RawAppointment, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.Position) != "" {
			out = append(out, r)
		}
	}
	return out
}
