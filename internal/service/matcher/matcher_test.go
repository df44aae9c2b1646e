package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"officeholders/internal/model"
)

func appt(position, name string, start, end int) model.RawAppointment {
	return model.RawAppointment{
		Position:     position,
		PersonName:   name,
		StartDateInt: start,
		EndDateInt:   end,
	}
}

func TestScore_Cascade(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		canon        string
		raw          string
		wantScore    int
		wantStrategy model.Strategy
	}{
		{name: "exact", canon: "총장", raw: "총장", wantScore: 100, wantStrategy: model.StrategyExact},
		{name: "exact after whitespace collapse", canon: "대학원 경영학과장", raw: " 대학원   경영학과장", wantScore: 100, wantStrategy: model.StrategyExact},
		{name: "exact across no-break space", canon: "대학원 경영학과장", raw: "대학원\u00a0경영학과장", wantScore: 100, wantStrategy: model.StrategyExact},
		{name: "exact across ideographic space", canon: "대학원 경영학과장", raw: "대학원\u3000경영학과장", wantScore: 100, wantStrategy: model.StrategyExact},
		{name: "compact", canon: "대학원 경영학과장", raw: "대학원경영학과장", wantScore: 90, wantStrategy: model.StrategyCompact},
		{name: "noise token", canon: "산학협력단장", raw: "산학협력단장(주)", wantScore: 90, wantStrategy: model.StrategyCompact},
		{name: "canon ends with raw", canon: "대학원 경영학과장", raw: "경영학과장", wantScore: 80, wantStrategy: model.StrategyCanonTail},
		{name: "raw ends with canon", canon: "경영학과장", raw: "대학원 경영학과장", wantScore: 70, wantStrategy: model.StrategyRawTail},
		{name: "canon tail of four runes", canon: "대학원 교학처장", raw: "교학처장", wantScore: 80, wantStrategy: model.StrategyCanonTail},
		{name: "raw tail too short falls to overlap", canon: "부총장", raw: "대학원부총장", wantScore: 30, wantStrategy: model.StrategyOverlap},
		{name: "substring not suffix", canon: "도서관장", raw: "도서관장보", wantScore: 48, wantStrategy: model.StrategyOverlap},
		{name: "unrelated", canon: "총장", raw: "기획처장", wantScore: 0, wantStrategy: model.StrategyNone},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gotScore, gotStrategy := Score(tt.canon, tt.raw)
			assert.Equal(t, tt.wantScore, gotScore)
			assert.Equal(t, tt.wantStrategy, gotStrategy)
		})
	}
}

func TestBestMatch_ContainmentScenario(t *testing.T) {
	t.Parallel()

	active := []model.RawAppointment{
		appt("대학원 경영학과장", "김철수", 20250301, model.OpenEndDate),
	}
	res, ok := New().BestMatch(model.CanonEntry{Position: "경영학과장"}, active)
	require.True(t, ok)
	assert.Equal(t, 70, res.Score)
	assert.Equal(t, "김철수", res.Appointment.PersonName)

	res, ok = New().BestMatch(model.CanonEntry{Position: "대학원 경영학과장"}, []model.RawAppointment{
		appt("경영학과장", "이영희", 20250301, model.OpenEndDate),
	})
	require.True(t, ok)
	assert.Equal(t, 80, res.Score)
	assert.Equal(t, model.StrategyCanonTail, res.Strategy)
}

func TestBestMatch_UnicodeWhitespaceInRawTitle(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"대학원\u00a0경영학과장", "대학원\u3000경영학과장", "대학원\u00a0\u00a0경영학과장"} {
		res, ok := New().BestMatch(model.CanonEntry{Position: "대학원 경영학과장"}, []model.RawAppointment{
			appt(raw, "김철수", 20250301, model.OpenEndDate),
		})
		require.True(t, ok, "raw=%q", raw)
		assert.Equal(t, 100, res.Score, "raw=%q", raw)
		assert.Equal(t, model.StrategyExact, res.Strategy, "raw=%q", raw)
	}
}

func TestBestMatch_ExactPreferredRegardlessOfOrder(t *testing.T) {
	t.Parallel()

	canon := model.CanonEntry{Position: "대학원 경영학과장"}
	active := []model.RawAppointment{
		appt("경영학과장", "후보1", 20250901, model.OpenEndDate),
		appt("대학원경영학과장", "후보2", 20250801, model.OpenEndDate),
		appt("대학원 경영학과장", "정답", 20250101, model.OpenEndDate),
	}
	res, ok := New().BestMatch(canon, active)
	require.True(t, ok)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, "정답", res.Appointment.PersonName)
}

func TestBestMatch_FirstReachingMaxWins(t *testing.T) {
	t.Parallel()

	active := []model.RawAppointment{
		appt("기 획 처 장", "최신", 20250301, model.OpenEndDate),
		appt("기획처장", "이전", 20230301, model.OpenEndDate),
	}
	res, ok := New().BestMatch(model.CanonEntry{Position: "기획 처장"}, active)
	require.True(t, ok)
	assert.Equal(t, 90, res.Score)
	assert.Equal(t, "최신", res.Appointment.PersonName)
}

func TestBestMatch_BelowThresholdRejected(t *testing.T) {
	t.Parallel()

	active := []model.RawAppointment{
		appt("도서관장보", "홍길동", 20250301, model.OpenEndDate),
	}
	res, ok := New().BestMatch(model.CanonEntry{Position: "도서관장"}, active)
	assert.False(t, ok)
	assert.Nil(t, res.Appointment)
	assert.Equal(t, 48, res.Score)
	assert.False(t, res.Matched())
}

func TestBestMatch_NoCandidates(t *testing.T) {
	t.Parallel()

	res, ok := New().BestMatch(model.CanonEntry{Category: "본부", Position: "총장"}, nil)
	assert.False(t, ok)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, model.StrategyNone, res.Strategy)
	assert.Equal(t, "본부", res.Canon.Category)
}

func TestBestMatch_AcceptedScoresNeverBelowThreshold(t *testing.T) {
	t.Parallel()

	titles := []string{"총장", "부총장", "대학원장", "대학원 경영학과장", "경영학과장", "도서관장", "학생처장", "", "장"}
	active := []model.RawAppointment{
		appt("부총장", "a", 1, model.OpenEndDate),
		appt("대학원장", "b", 1, model.OpenEndDate),
		appt("경영학과장", "c", 1, model.OpenEndDate),
		appt("도서관장보", "d", 1, model.OpenEndDate),
		appt("학생처 장", "e", 1, model.OpenEndDate),
	}
	m := New()
	for _, title := range titles {
		res, ok := m.BestMatch(model.CanonEntry{Position: title}, active)
		if ok {
			assert.GreaterOrEqual(t, res.Score, AcceptThreshold, "title=%q", title)
			assert.NotNil(t, res.Appointment)
		} else {
			assert.Nil(t, res.Appointment, "title=%q", title)
		}
	}
}

func TestBestMatch_Trace(t *testing.T) {
	t.Parallel()

	var events []TraceEvent
	m := New(WithTrace(func(ev TraceEvent) { events = append(events, ev) }))

	active := []model.RawAppointment{
		appt("기획처장", "a", 1, model.OpenEndDate),
		appt("총장", "b", 1, model.OpenEndDate),
	}
	_, ok := m.BestMatch(model.CanonEntry{Position: "총장"}, active)
	require.True(t, ok)
	require.Len(t, events, 3)

	assert.Equal(t, 0, events[0].Score)
	assert.False(t, events[0].NewBest)
	assert.Equal(t, 100, events[1].Score)
	assert.True(t, events[1].NewBest)
	assert.True(t, events[2].Final)
	assert.True(t, events[2].Accepted)
	assert.Equal(t, "b", events[2].Candidate.PersonName)
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	active := []model.RawAppointment{
		appt("총장", "a", 1, model.OpenEndDate),
		appt("도서관장보", "b", 1, model.OpenEndDate),
		appt("도서 관장보", "c", 1, model.OpenEndDate),
		appt("중앙도서관장", "d", 1, model.OpenEndDate),
	}
	got := Suggest("도서관장", active, 5)
	assert.ElementsMatch(t, []string{"도서관장보", "중앙도서관장"}, got)

	assert.Empty(t, Suggest("", active, 5))
	assert.Len(t, Suggest("도서관장", active, 1), 1)
}
