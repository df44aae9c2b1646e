package matcher

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"officeholders/internal/model"
	"officeholders/internal/parser"
)

// Suggest 为未匹配的基准职位列出最相近的在任职位名（仅用于日志诊断，不影响匹配结果）
// 两个方向做子序列模糊查找，按编辑距离排序
func Suggest(title string, active []model.RawAppointment, limit int) []string {
	target := parser.ComparisonForm(title)
	if target == "" || limit <= 0 {
		return nil
	}

	var (
		comps     []string
		originals []string
		seen      = make(map[string]struct{})
	)
	for _, a := range active {
		c := parser.ComparisonForm(a.Position)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		comps = append(comps, c)
		originals = append(originals, a.Position)
	}

	ranks := fuzzy.RankFindNormalizedFold(target, comps)
	for i, c := range comps {
		if c != target && fuzzy.MatchNormalizedFold(c, target) {
			ranks = append(ranks, fuzzy.Rank{
				Source:        c,
				Target:        target,
				Distance:      fuzzy.LevenshteinDistance(c, target),
				OriginalIndex: i,
			})
		}
	}
	sort.Stable(ranks)

	out := make([]string, 0, limit)
	picked := make(map[int]struct{}, limit)
	for _, r := range ranks {
		if _, ok := picked[r.OriginalIndex]; ok {
			continue
		}
		picked[r.OriginalIndex] = struct{}{}
		out = append(out, originals[r.OriginalIndex])
		if len(out) == limit {
			break
		}
	}
	return out
}
