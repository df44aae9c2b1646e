package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"officeholders/internal/model"
)

func rec(position, name string, start, end int) model.RawAppointment {
	return model.RawAppointment{Position: position, PersonName: name, StartDateInt: start, EndDateInt: end}
}

func TestFilterActive(t *testing.T) {
	t.Parallel()

	const ref = 20251126
	records := []model.RawAppointment{
		rec("총장", "expired", 20200301, 20240228),
		rec("총장", "current", 20240301, 20280229),
		rec("기획처장", "future", 20251201, model.OpenEndDate),
		rec("학생처장", "open", 20250301, model.OpenEndDate),
		rec("도서관장", "unknown start", 0, 20260228),
		rec("교무처장", "ends today", 20230301, ref),
		rec("입학처장", "starts today", ref, 20271231),
	}

	got := FilterActive(records, ref)
	names := make([]string, 0, len(got))
	for _, r := range got {
		names = append(names, r.PersonName)
	}
	assert.Equal(t, []string{"starts today", "open", "current", "ends today", "unknown start"}, names)
}

func TestFilterActive_StableForEqualStart(t *testing.T) {
	t.Parallel()

	records := []model.RawAppointment{
		rec("a", "first", 20250301, model.OpenEndDate),
		rec("b", "second", 20250301, model.OpenEndDate),
		rec("c", "newest", 20250901, model.OpenEndDate),
		rec("d", "third", 20250301, model.OpenEndDate),
	}
	got := FilterActive(records, 20251001)
	assert.Equal(t, "newest", got[0].PersonName)
	assert.Equal(t, "first", got[1].PersonName)
	assert.Equal(t, "second", got[2].PersonName)
	assert.Equal(t, "third", got[3].PersonName)
}

func TestFilterActive_OpenEndAlwaysActiveOnceStarted(t *testing.T) {
	t.Parallel()

	r := rec("총장", "x", 20250301, model.OpenEndDate)
	assert.Len(t, FilterActive([]model.RawAppointment{r}, 99991231), 1)
	assert.Empty(t, FilterActive([]model.RawAppointment{r}, 20250228))
}

func TestWithPosition(t *testing.T) {
	t.Parallel()

	got := WithPosition([]model.RawAppointment{
		rec("총장", "a", 1, 2),
		rec("  ", "b", 1, 2),
		rec("", "c", 1, 2),
		rec("처장", "d", 1, 2),
	})
	assert.Len(t, got, 2)
	assert.Equal(t, "d", got[1].PersonName)
}
