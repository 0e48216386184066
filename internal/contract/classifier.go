package contract

import (
	"strings"
	"time"
)

// Classification describes how a contract behaves over its term: type,
// service scope, and the shift auto-generation policy.
type Classification struct {
	Type                string
	ServiceScope        string
	DurationMonths      int
	AutoGenerateShifts  bool
	GenerateAdvanceDays int
	IsRenewable         bool
	AutoRenewal         bool
}

// Duration buckets in days.
const (
	oneDayThreshold    = 1
	weeklyThreshold    = 7
	monthlyThreshold   = 30
	shortTermThreshold = 183 // ~6 months
)

// Classify derives the baseline from the elapsed days between start and end,
// then lets explicit keyword cues in the text override individual fields.
// Keyword cues always win over the date-derived default.
func Classify(text string, startDate, endDate *time.Time) Classification {
	c := classifyByDates(startDate, endDate)
	applyKeywordOverrides(text, &c)
	return c
}

func classifyByDates(startDate, endDate *time.Time) Classification {
	if startDate == nil || endDate == nil {
		return Classification{
			Type:                TypeLongTerm,
			ServiceScope:        ScopeFullTime,
			DurationMonths:      12,
			AutoGenerateShifts:  true,
			GenerateAdvanceDays: 30,
			IsRenewable:         true,
		}
	}

	days := int(endDate.Sub(*startDate).Hours() / 24)
	months := monthsBetween(*startDate, *endDate)

	switch {
	case days <= oneDayThreshold:
		return Classification{
			Type:           TypeOneDay,
			ServiceScope:   ScopeEvent,
			DurationMonths: 0,
		}
	case days <= weeklyThreshold:
		return Classification{
			Type:                TypeWeekly,
			ServiceScope:        ScopeShiftBased,
			DurationMonths:      0,
			AutoGenerateShifts:  true,
			GenerateAdvanceDays: 3,
		}
	case days <= monthlyThreshold:
		return Classification{
			Type:                TypeMonthly,
			ServiceScope:        ScopeShiftBased,
			DurationMonths:      1,
			AutoGenerateShifts:  true,
			GenerateAdvanceDays: 7,
			IsRenewable:         true,
		}
	case days <= shortTermThreshold:
		return Classification{
			Type:                TypeShortTerm,
			ServiceScope:        ScopeFullTime,
			DurationMonths:      months,
			AutoGenerateShifts:  true,
			GenerateAdvanceDays: 14,
			IsRenewable:         true,
		}
	default:
		return Classification{
			Type:                TypeLongTerm,
			ServiceScope:        ScopeFullTime,
			DurationMonths:      months,
			AutoGenerateShifts:  true,
			GenerateAdvanceDays: 30,
			IsRenewable:         true,
		}
	}
}

func monthsBetween(start, end time.Time) int {
	months := int(end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 1 {
		months = 1
	}
	return months
}

// Keyword cues. Each cue overrides only the fields it speaks to.
var (
	longTermCues  = []string{"dài hạn", "lâu dài"}
	shortTermCues = []string{"ngắn hạn", "thời vụ", "tạm thời"}
	oneDayCues    = []string{"một ngày", "1 ngày", "sự kiện"}
	weeklyCues    = []string{"theo tuần", "hàng tuần"}
	autoRenewCues = []string{"tự động gia hạn", "gia hạn tự động", "tự gia hạn"}
)

func applyKeywordOverrides(text string, c *Classification) {
	lower := strings.ToLower(text)

	containsAny := func(cues []string) bool {
		for _, cue := range cues {
			if strings.Contains(lower, cue) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny(oneDayCues):
		c.Type = TypeOneDay
		c.ServiceScope = ScopeEvent
		c.AutoGenerateShifts = false
		c.GenerateAdvanceDays = 0
		c.IsRenewable = false
	case containsAny(weeklyCues):
		c.Type = TypeWeekly
		c.ServiceScope = ScopeShiftBased
		c.AutoGenerateShifts = true
		c.GenerateAdvanceDays = 3
		c.IsRenewable = false
	case containsAny(shortTermCues):
		c.Type = TypeShortTerm
		c.ServiceScope = ScopeFullTime
		c.AutoGenerateShifts = true
		c.GenerateAdvanceDays = 14
		c.IsRenewable = true
	case containsAny(longTermCues):
		c.Type = TypeLongTerm
		c.ServiceScope = ScopeFullTime
		c.AutoGenerateShifts = true
		c.GenerateAdvanceDays = 30
		c.IsRenewable = true
	}

	if containsAny(autoRenewCues) {
		c.AutoRenewal = true
		c.IsRenewable = true
	}
}
