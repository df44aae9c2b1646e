// Package matcher 基准职位名与人事导出职位名之间的模糊匹配
package matcher

import (
	"strings"
	"unicode/utf8"

	"officeholders/internal/model"
	"officeholders/internal/parser"
)

const (
	// AcceptThreshold 接受匹配的最低分
	// 字符重合度策略最高 60 分，永远达不到该阈值，只用于诊断
	AcceptThreshold = 70

	scoreExact     = 100
	scoreCompact   = 90
	scoreCanonTail = 80
	scoreRawTail   = 70
	overlapCap     = 60

	minTailRunes = 3 // 后缀包含要求被包含方长度 > 3
)

// TraceEvent 匹配过程中的诊断事件
type TraceEvent struct {
	Title     string
	Candidate *model.RawAppointment // 为 nil 表示最终结论
	Score     int
	Strategy  model.Strategy
	NewBest   bool
	Final     bool
	Accepted  bool
}

// TraceFunc 诊断回调，每个候选打分后调用一次，结束时再以 Final=true 调用一次
type TraceFunc func(TraceEvent)

// Option 匹配器选项
type Option func(*Matcher)

// WithTrace 设置诊断回调
func WithTrace(fn TraceFunc) Option {
	return func(m *Matcher) {
		m.trace = fn
	}
}

// Matcher 多策略职位名匹配器
type Matcher struct {
	trace TraceFunc
}

// New 创建匹配器
func New(opts ...Option) *Matcher {
	m := &Matcher{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type forms struct {
	norm string
	comp string
}

func formsOf(s string) forms {
	return forms{norm: parser.Normalize(s), comp: parser.ComparisonForm(s)}
}

// Score 计算基准名与单个原始职位名的得分，策略自上而下，命中即返回
func Score(canonTitle, rawTitle string) (int, model.Strategy) {
	return score(formsOf(canonTitle), formsOf(rawTitle))
}

func score(canon, raw forms) (int, model.Strategy) {
	switch {
	case canon.norm == raw.norm:
		return scoreExact, model.StrategyExact
	case canon.comp == raw.comp:
		return scoreCompact, model.StrategyCompact
	case strings.HasSuffix(canon.comp, raw.comp) && utf8.RuneCountInString(raw.comp) > minTailRunes:
		return scoreCanonTail, model.StrategyCanonTail
	case strings.HasSuffix(raw.comp, canon.comp) && utf8.RuneCountInString(canon.comp) > minTailRunes:
		return scoreRawTail, model.StrategyRawTail
	case strings.Contains(raw.comp, canon.comp) || strings.Contains(canon.comp, raw.comp):
		return overlapScore(canon.comp, raw.comp), model.StrategyOverlap
	}
	return 0, model.StrategyNone
}

// overlapScore floor(60 * |A∩B| / |A∪B|)，A、B 为字符集合
func overlapScore(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	setA := make(map[rune]struct{}, len(a))
	for _, r := range a {
		setA[r] = struct{}{}
	}
	union := make(map[rune]struct{}, len(a)+len(b))
	for r := range setA {
		union[r] = struct{}{}
	}
	inter := 0
	seen := make(map[rune]struct{}, len(b))
	for _, r := range b {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		union[r] = struct{}{}
		if _, ok := setA[r]; ok {
			inter++
		}
	}
	return overlapCap * inter / len(union)
}

// BestMatch 在在任记录中寻找最佳匹配
// active 须已按开始日倒序排列：同分时取第一个达到最高分的候选
func (m *Matcher) BestMatch(canon model.CanonEntry, active []model.RawAppointment) (model.MatchResult, bool) {
	target := formsOf(canon.Position)
	result := model.MatchResult{Canon: canon, Strategy: model.StrategyNone}

	var best *model.RawAppointment
	for i := range active {
		cand := &active[i]
		s, strategy := score(target, formsOf(cand.Position))
		newBest := s > result.Score
		if newBest {
			result.Score = s
			result.Strategy = strategy
			best = cand
		}
		m.emit(TraceEvent{
			Title:     canon.Position,
			Candidate: cand,
			Score:     s,
			Strategy:  strategy,
			NewBest:   newBest,
		})
	}

	accepted := best != nil && result.Score >= AcceptThreshold
	if accepted {
		result.Appointment = best
	}
	m.emit(TraceEvent{
		Title:     canon.Position,
		Candidate: best,
		Score:     result.Score,
		Strategy:  result.Strategy,
		Final:     true,
		Accepted:  accepted,
	})
	return result, accepted
}

func (m *Matcher) emit(ev TraceEvent) {
	if m.trace != nil {
		m.trace(ev)
	}
}
