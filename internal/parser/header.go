package parser

// FindHeaderRow 在前 scanRows 行中查找包含哨兵单元格（如 "성명"）的行
// 找不到返回 -1
func FindHeaderRow(rows [][]string, sentinel string, scanRows int) int {
	for idx, row := range rows {
		if idx >= scanRows {
			break
		}
		if ContainsCell(row, sentinel) {
			return idx
		}
	}
	return -1
}

// ColumnIndex 列名（去首尾空白后）到列索引的映射
type ColumnIndex struct {
	names []string
	index map[string]int
}

// NewColumnIndex 根据表头行建立列索引；重复列名以第一次出现为准
func NewColumnIndex(header []string) *ColumnIndex {
	ci := &ColumnIndex{
		names: make([]string, 0, len(header)),
		index: make(map[string]int, len(header)),
	}
	for i, h := range header {
		name := NormalizeColumnName(h)
		if name == "" {
			continue
		}
		ci.names = append(ci.names, name)
		if _, ok := ci.index[name]; !ok {
			ci.index[name] = i
		}
	}
	return ci
}

// Lookup 查找列索引
func (c *ColumnIndex) Lookup(name string) (int, bool) {
	idx, ok := c.index[name]
	return idx, ok
}

// Names 表头中所有非空列名（原顺序）
func (c *ColumnIndex) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Require 校验必需列，返回缺失列（保持 required 的顺序）
func (c *ColumnIndex) Require(required ...string) []string {
	var missing []string
	for _, col := range required {
		if _, ok := c.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
