package model

// Strategy 匹配策略
type Strategy string

const (
	StrategyNone      Strategy = "none"
	StrategyExact     Strategy = "exact"      // 规范化后完全一致
	StrategyCompact   Strategy = "compact"    // 去空格/噪声后一致
	StrategyCanonTail Strategy = "canon_tail" // 基准名以原始名结尾
	StrategyRawTail   Strategy = "raw_tail"   // 原始名以基准名结尾
	StrategyOverlap   Strategy = "overlap"    // 子串 + 字符集重合度
)

// MatchResult 单个基准职位的匹配结果
type MatchResult struct {
	Canon       CanonEntry      `json:"canon"`
	Appointment *RawAppointment `json:"appointment,omitempty"`
	Score       int             `json:"score"`
	Strategy    Strategy        `json:"strategy"`
}

// Matched 是否匹配成功
func (r MatchResult) Matched() bool {
	return r.Appointment != nil
}

// DisplayCell 报表中的一个单元（左栏或右栏）
type DisplayCell struct {
	Category string `json:"category"`
	Position string `json:"position"`
	Name     string `json:"name"`
	Period   string `json:"period"`
}

// ReportRow 报表一行：左右两栏
type ReportRow struct {
	Left  DisplayCell `json:"left"`
	Right DisplayCell `json:"right"`
}

// ReportHeaders 左右两栏表头
type ReportHeaders struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

// Report 输出文档（一次生成、一次写出）
type Report struct {
	Title   string        `json:"title"`
	Date    string        `json:"date"`
	Headers ReportHeaders `json:"headers"`
	Rows    []ReportRow   `json:"rows"`
}
