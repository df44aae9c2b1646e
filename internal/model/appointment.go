package model

// OpenEndDate 任命结束日无法解析时的哨兵值（表示仍在任）
const OpenEndDate = 99999999

// RawAppointment 人事导出表中的一条任命记录
type RawAppointment struct {
	RowNo        int    `json:"rowNo"`
	Position     string `json:"position"`
	PersonName   string `json:"personName"`
	StartRaw     string `json:"startRaw"`
	EndRaw       string `json:"endRaw"`
	StartDateInt int    `json:"startDateInt"` // YYYYMMDD，无法解析为 0
	EndDateInt   int    `json:"endDateInt"`   // YYYYMMDD，无法解析为 OpenEndDate
}

// IsOpenEnded 结束日是否为开放（未填或无法解析）
func (a RawAppointment) IsOpenEnded() bool {
	return a.EndDateInt == OpenEndDate
}

// ActiveOn 判断在参考日是否在任
// 开始日为 0 时视为已开始
func (a RawAppointment) ActiveOn(ref int) bool {
	if a.StartDateInt > ref {
		return false
	}
	return a.IsOpenEnded() || a.EndDateInt >= ref
}

// CanonEntry 基准表（rule sheet）中的一行：区分 + 职位名
type CanonEntry struct {
	RowNo    int    `json:"rowNo"`
	Category string `json:"category"`
	Position string `json:"position"`
}
