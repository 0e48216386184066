// Package extraction implements rule-based field extraction over the plain
// text of Vietnamese guard-service contracts. Every rule is a pure function
// over the full text (or a section-scoped window of it); rules share no
// mutable state and can run in any order.
package extraction

import "time"

// Extraction is the immutable result of running every rule against one
// document. Nil / zero fields mean the rule found nothing.
type Extraction struct {
	ContractNumber string

	StartDate *time.Time
	EndDate   *time.Time

	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	CustomerEmail   string
	ContactName     string
	ContactTitle    string

	GuardCount   int
	CoverageType string // round_clock | day_shift | night_shift

	LocationName    string
	LocationAddress string

	Shifts []ShiftBlock

	HolidayWork *bool
	WeekendWork *bool

	Conditions Conditions
}

// ShiftBlock is one recognized shift-time line, e.g. "Ca đêm: 22:00 - 06:00".
type ShiftBlock struct {
	Label     string // normalized: morning, afternoon, evening, night, noon, weekend
	StartTime string // HH:MM, empty when not matched
	EndTime   string
}

// CrossesMidnight reports whether the block ends on the following day.
func (s ShiftBlock) CrossesMidnight() bool {
	if s.StartTime == "" || s.EndTime == "" {
		return false
	}
	return s.EndTime < s.StartTime
}

// Conditions bundles the working-condition policy parameters. All fields are
// optional; the persistence layer stores nulls for unmatched ones.
type Conditions struct {
	OvertimeMaxHours *int     // per month
	OvertimeRate     *float64 // 1.5 == 150%

	NightShiftStart *string // HH:MM
	NightShiftEnd   *string

	SleepTimeRatio *float64 // paid fraction of sleep time on continuous shifts
	MinRestHours   *int     // between shifts

	AnnualLeaveDays *int
	SickLeaveDays   *int

	MealAllowance    *int64 // VND per day
	UniformAllowance *int64 // VND per year

	ViolationPolicy *string
}

// ExtractAll runs every rule once and assembles the result. Order is
// irrelevant; each call only reads the text.
func ExtractAll(text string) Extraction {
	start, end := ExtractDateRange(text)
	contactName, contactTitle := ExtractContactPerson(text)

	return Extraction{
		ContractNumber:  ExtractContractNumber(text),
		StartDate:       start,
		EndDate:         end,
		CustomerName:    ExtractCustomerName(text),
		CustomerAddress: ExtractCustomerAddress(text),
		CustomerPhone:   ExtractCustomerPhone(text),
		CustomerEmail:   ExtractCustomerEmail(text),
		ContactName:     contactName,
		ContactTitle:    contactTitle,
		GuardCount:      ExtractGuardCount(text),
		CoverageType:    ExtractCoverageType(text),
		LocationName:    ExtractLocationName(text),
		LocationAddress: ExtractLocationAddress(text),
		Shifts:          ExtractShiftBlocks(text),
		HolidayWork:     ExtractHolidayWorkCue(text),
		WeekendWork:     ExtractWeekendWorkCue(text),
		Conditions:      ExtractConditions(text),
	}
}
