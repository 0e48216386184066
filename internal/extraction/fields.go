package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// --- contract number ---

var contractNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)hợp\s+đồng\s+số\s*[:.]?\s*([0-9A-Za-z]+[-/][0-9A-Za-z\-/.]+)`),
	regexp.MustCompile(`(?i)\bsố\s*[:.]?\s*((?:HĐ|HD)[0-9A-Za-z\-/.]*[-/][0-9A-Za-z\-/.]+)`),
	regexp.MustCompile(`(?i)\bsố\s*[:.]\s*([0-9]{1,6}[-/][0-9A-Za-z\-/.]+)`),
}

func ExtractContractNumber(text string) string {
	return firstMatch(text, contractNumberPatterns)
}

// --- date ranges ---

const (
	shortDate = `(\d{1,2}[-/.]\d{1,2}[-/.]\d{4})`
	longDate  = `ngày\s+(\d{1,2})\s+tháng\s+(\d{1,2})\s+năm\s+(\d{4})`
)

var (
	rangeShort = regexp.MustCompile(`(?i)từ\s+ngày\s*[:]?\s*` + shortDate + `\s+đến\s+(?:hết\s+)?(?:ngày\s+)?` + shortDate)
	rangeLong  = regexp.MustCompile(`(?i)từ\s+` + longDate + `\s+đến\s+(?:hết\s+)?` + longDate)
)

// ExtractDateRange finds the contract term, preferring the term article
// (ĐIỀU 5 / "THỜI HẠN HỢP ĐỒNG") and falling back to the whole document.
func ExtractDateRange(text string) (*time.Time, *time.Time) {
	if window, ok := termSection(text); ok {
		if s, e := matchDateRange(window); s != nil || e != nil {
			return s, e
		}
	}
	return matchDateRange(text)
}

func matchDateRange(text string) (*time.Time, *time.Time) {
	if m := rangeShort.FindStringSubmatch(text); m != nil {
		return parseDate(m[1]), parseDate(m[2])
	}
	if m := rangeLong.FindStringSubmatch(text); m != nil {
		start := assembleDate(m[1], m[2], m[3])
		end := assembleDate(m[4], m[5], m[6])
		return start, end
	}
	return nil, nil
}

func assembleDate(day, month, year string) *time.Time {
	d, _ := strconv.Atoi(day)
	mo, _ := strconv.Atoi(month)
	y, _ := strconv.Atoi(year)
	if d == 0 || mo == 0 || y == 0 {
		return nil
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	return &t
}

// --- counterparty identity ---

var customerNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:công\s+ty|cty)\s*[:]?\s+((?:TNHH|CP|Cổ\s+phần|Trách\s+nhiệm\s+hữu\s+hạn)[^\n,]+)`),
	regexp.MustCompile(`(?i)tên\s+(?:công\s+ty|đơn\s+vị|doanh\s+nghiệp)\s*[:]\s*([^\n]+)`),
	regexp.MustCompile(`(?m)^\s*[:]?\s*(CÔNG\s+TY[^\n]+)`),
}

// ExtractCustomerName searches the counterparty block first; the block heading
// itself (BÊN B: CÔNG TY ...) often carries the name inline.
func ExtractCustomerName(text string) string {
	name := scopedMatch(text, counterpartySection, customerNamePatterns)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToUpper(name), "TNHH") ||
		strings.HasPrefix(strings.ToUpper(name), "CP") ||
		strings.HasPrefix(strings.ToUpper(name), "CỔ PHẦN") ||
		strings.HasPrefix(strings.ToUpper(name), "TRÁCH NHIỆM") {
		name = "Công ty " + name
	}
	return strings.TrimRight(name, " .,;")
}

var customerAddressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)địa\s+chỉ\s*[:]\s*([^\n]+)`),
	regexp.MustCompile(`(?i)trụ\s+sở(?:\s+chính)?\s*[:]\s*([^\n]+)`),
}

func ExtractCustomerAddress(text string) string {
	return strings.TrimRight(scopedMatch(text, counterpartySection, customerAddressPatterns), " .,;")
}

var customerPhonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:điện\s+thoại|sđt|tel|phone)\s*[:.]?\s*((?:\+?84|0)[\d\s.\-]{8,13})`),
}

func ExtractCustomerPhone(text string) string {
	raw := scopedMatch(text, counterpartySection, customerPhonePatterns)
	if raw == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var customerEmailPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)email\s*[:.]?\s*([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`),
	regexp.MustCompile(`([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`),
}

func ExtractCustomerEmail(text string) string {
	return strings.ToLower(scopedMatch(text, counterpartySection, customerEmailPatterns))
}

var (
	contactNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:người\s+)?đại\s+diện\s*[:]\s*(?:(?:ông|bà)\s+)?([^\n,]+)`),
		regexp.MustCompile(`(?i)người\s+liên\s+hệ\s*[:]\s*([^\n,]+)`),
	}
	contactTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)chức\s+vụ\s*[:]\s*([^\n,]+)`),
	}
)

// ExtractContactPerson returns the counterparty signatory and, when present,
// their title. Restricted to the counterparty block: a signatory matched
// elsewhere would belong to the provider side.
func ExtractContactPerson(text string) (name, title string) {
	window, ok := counterpartySection(text)
	if !ok {
		return "", ""
	}
	name = strings.TrimRight(firstMatch(window, contactNamePatterns), " .;")
	title = strings.TrimRight(firstMatch(window, contactTitlePatterns), " .;")
	return name, title
}

// --- staffing ---

var guardCountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)số\s+lượng\s+(?:nhân\s+viên\s+)?bảo\s+vệ\s*[:]?\s*(\d{1,3})`),
	regexp.MustCompile(`(?i)(\d{1,3})\s*(?:\(.*?\)\s*)?nhân\s+viên\s+bảo\s+vệ`),
	regexp.MustCompile(`(?i)bố\s+trí\s*[:]?\s*(\d{1,3})\s*(?:nhân\s+viên|vị\s+trí|bảo\s+vệ)`),
}

func ExtractGuardCount(text string) int {
	raw := firstMatch(text, guardCountPatterns)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// Coverage models per the glossary.
const (
	CoverageRoundClock = "round_clock"
	CoverageDayShift   = "day_shift"
	CoverageNightShift = "night_shift"
)

var (
	coverageRoundClockCues = []string{"24/7", "24h/24", "24/24", "liên tục 24"}
	coverageNightCues      = []string{"chỉ ban đêm", "ca đêm duy nhất", "bảo vệ ban đêm"}
	coverageDayCues        = []string{"chỉ ban ngày", "giờ hành chính", "bảo vệ ban ngày"}
)

func ExtractCoverageType(text string) string {
	lower := strings.ToLower(text)
	for _, cue := range coverageRoundClockCues {
		if strings.Contains(lower, cue) {
			return CoverageRoundClock
		}
	}
	for _, cue := range coverageNightCues {
		if strings.Contains(lower, cue) {
			return CoverageNightShift
		}
	}
	for _, cue := range coverageDayCues {
		if strings.Contains(lower, cue) {
			return CoverageDayShift
		}
	}
	return ""
}

// --- protected site (ĐIỀU 1, section-restricted) ---

var (
	locationNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:mục\s+tiêu|địa\s+điểm)\s+bảo\s+vệ\s*[:]\s*([^\n,]+)`),
		regexp.MustCompile(`(?i)tên\s+mục\s+tiêu\s*[:]\s*([^\n,]+)`),
	}
	locationAddressPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:địa\s+chỉ|tại)\s*[:]\s*([^\n]+)`),
	}
)

func ExtractLocationName(text string) string {
	window, ok := locationSection(text)
	if !ok {
		return ""
	}
	return strings.TrimRight(firstMatch(window, locationNamePatterns), " .,;")
}

func ExtractLocationAddress(text string) string {
	window, ok := locationSection(text)
	if !ok {
		return ""
	}
	return strings.TrimRight(firstMatch(window, locationAddressPatterns), " .,;")
}

// --- three-way boolean cues ---

// Negative cues run first so "không làm việc ngày lễ" does not satisfy the
// positive substring it contains.
func threeWayCue(text string, negatives, positives []string) *bool {
	lower := strings.ToLower(text)
	for _, cue := range negatives {
		if strings.Contains(lower, cue) {
			v := false
			return &v
		}
	}
	for _, cue := range positives {
		if strings.Contains(lower, cue) {
			v := true
			return &v
		}
	}
	return nil
}

var (
	holidayNegatives = []string{"không làm việc ngày lễ", "nghỉ các ngày lễ", "nghỉ lễ, tết"}
	holidayPositives = []string{"làm việc ngày lễ", "kể cả ngày lễ", "bao gồm ngày lễ", "làm việc các ngày lễ"}

	weekendNegatives = []string{"không làm việc cuối tuần", "nghỉ thứ 7", "nghỉ cuối tuần"}
	weekendPositives = []string{"làm việc cuối tuần", "kể cả thứ 7", "cả thứ 7 và chủ nhật", "bao gồm cuối tuần"}
)

func ExtractHolidayWorkCue(text string) *bool {
	return threeWayCue(text, holidayNegatives, holidayPositives)
}

func ExtractWeekendWorkCue(text string) *bool {
	return threeWayCue(text, weekendNegatives, weekendPositives)
}
