package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestClassify_DateBuckets(t *testing.T) {
	start := datePtr(2025, 3, 1)
	cases := []struct {
		name        string
		end         *time.Time
		wantType    string
		wantAdvance int
		wantRenew   bool
	}{
		{"one day", datePtr(2025, 3, 1), TypeOneDay, 0, false},
		{"weekly", datePtr(2025, 3, 6), TypeWeekly, 3, false},
		{"monthly", datePtr(2025, 3, 28), TypeMonthly, 7, true},
		{"short term", datePtr(2025, 7, 15), TypeShortTerm, 14, true},
		{"long term", datePtr(2026, 3, 1), TypeLongTerm, 30, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Classify("", start, tc.end)
			assert.Equal(t, tc.wantType, c.Type)
			assert.Equal(t, tc.wantAdvance, c.GenerateAdvanceDays)
			assert.Equal(t, tc.wantRenew, c.IsRenewable)
		})
	}
}

func TestClassify_BucketsMonotonicInElapsedDays(t *testing.T) {
	rank := map[string]int{
		TypeOneDay:    0,
		TypeWeekly:    1,
		TypeMonthly:   2,
		TypeShortTerm: 3,
		TypeLongTerm:  4,
	}

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := -1
	for days := 0; days <= 400; days += 5 {
		end := start.AddDate(0, 0, days)
		c := Classify("", &start, &end)
		got := rank[c.Type]
		assert.GreaterOrEqual(t, got, prev, "bucket regressed at %d days", days)
		prev = got
	}
}

func TestClassify_MissingDatesDefaultLongTerm(t *testing.T) {
	c := Classify("", nil, nil)
	assert.Equal(t, TypeLongTerm, c.Type)
	assert.Equal(t, 12, c.DurationMonths)
	assert.True(t, c.IsRenewable)
	assert.Equal(t, 30, c.GenerateAdvanceDays)
}

func TestClassify_KeywordOverridesDates(t *testing.T) {
	// A two-year span would classify long_term; the explicit "thời vụ"
	// (seasonal/temporary) cue must win.
	c := Classify(
		"hợp đồng thời vụ cho mùa cao điểm",
		datePtr(2025, 1, 1), datePtr(2027, 1, 1),
	)
	assert.Equal(t, TypeShortTerm, c.Type)
	assert.Equal(t, 14, c.GenerateAdvanceDays)
}

func TestClassify_OneDayEventCue(t *testing.T) {
	c := Classify(
		"bảo vệ sự kiện khai trương",
		datePtr(2025, 1, 1), datePtr(2025, 6, 1),
	)
	assert.Equal(t, TypeOneDay, c.Type)
	assert.Equal(t, ScopeEvent, c.ServiceScope)
	assert.False(t, c.AutoGenerateShifts)
	assert.False(t, c.IsRenewable)
}

func TestClassify_AutoRenewCue(t *testing.T) {
	c := Classify(
		"hợp đồng tự động gia hạn sau khi hết hạn",
		datePtr(2025, 1, 1), datePtr(2025, 1, 4),
	)
	// Weekly baseline, but the auto-renew cue flips both renewal flags.
	assert.Equal(t, TypeWeekly, c.Type)
	assert.True(t, c.AutoRenewal)
	assert.True(t, c.IsRenewable)
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 12, monthsBetween(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	))
	assert.Equal(t, 5, monthsBetween(
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	))
	// Sub-month spans clamp to 1.
	assert.Equal(t, 1, monthsBetween(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
	))
}
