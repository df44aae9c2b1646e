package report

import (
	"officeholders/internal/model"
	"officeholders/internal/service/matcher"
)

// DefaultTitle 报表默认标题
const DefaultTitle = "교 원 보 직 자 현 황"

// ColumnHeaders 左右两栏共用的表头
var ColumnHeaders = []string{"구분", "보 직 명", "성 명", "기 간"}

// Stats 构建统计
type Stats struct {
	Total     int
	Matched   int
	Unmatched []model.CanonEntry
	Results   []model.MatchResult
}

// Builder 报表构建器
type Builder struct {
	title   string
	matcher *matcher.Matcher
}

// NewBuilder 创建构建器；title 为空时使用 DefaultTitle
func NewBuilder(title string, m *matcher.Matcher) *Builder {
	if title == "" {
		title = DefaultTitle
	}
	if m == nil {
		m = matcher.New()
	}
	return &Builder{title: title, matcher: m}
}

// Build 按基准表顺序逐项匹配并生成报表
// active 必须是 FilterActive 的输出（已按开始日倒序）
func (b *Builder) Build(canon []model.CanonEntry, active []model.RawAppointment, dateLabel string) (*model.Report, Stats) {
	stats := Stats{Total: len(canon), Results: make([]model.MatchResult, 0, len(canon))}
	cells := make([]model.DisplayCell, 0, len(canon))

	for _, entry := range canon {
		res, ok := b.matcher.BestMatch(entry, active)
		stats.Results = append(stats.Results, res)

		cell := model.DisplayCell{
			Category: entry.Category,
			Position: entry.Position,
		}
		if ok {
			stats.Matched++
			cell.Name = res.Appointment.PersonName
			cell.Period = FormatPeriod(*res.Appointment)
		} else {
			stats.Unmatched = append(stats.Unmatched, entry)
		}
		cells = append(cells, cell)
	}

	return &model.Report{
		Title: b.title,
		Date:  dateLabel,
		Headers: model.ReportHeaders{
			Left:  append([]string(nil), ColumnHeaders...),
			Right: append([]string(nil), ColumnHeaders...),
		},
		Rows: Split(cells),
	}, stats
}

// FormatPeriod "{开始}-{结束}"，使用原始单元格文本；无法解析的一侧为空串
func FormatPeriod(a model.RawAppointment) string {
	start, end := "", ""
	if a.StartDateInt > 0 {
		start = a.StartRaw
	}
	if !a.IsOpenEnded() {
		end = a.EndRaw
	}
	return start + "-" + end
}

// Split 在 ceil(n/2) 处切分为左右两栏，右栏不足时补空单元
func Split(cells []model.DisplayCell) []model.ReportRow {
	mid := (len(cells) + 1) / 2
	rows := make([]model.ReportRow, mid)
	for i := 0; i < mid; i++ {
		rows[i].Left = cells[i]
		if j := mid + i; j < len(cells) {
			rows[i].Right = cells[j]
		}
	}
	return rows
}
