package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// Working-condition rules. Each parameter has its own ordered template list;
// unmatched parameters stay nil and are stored as nulls.

var (
	overtimeMaxPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:tăng\s+ca|làm\s+thêm\s+giờ?)\s+(?:tối\s+đa|không\s+quá)\s*[:]?\s*(\d{1,3})\s*giờ`),
		regexp.MustCompile(`(?i)tối\s+đa\s+(\d{1,3})\s*giờ\s+(?:tăng\s+ca|làm\s+thêm)`),
	}
	overtimeRatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:lương|đơn\s+giá)\s+(?:tăng\s+ca|làm\s+thêm)\s*(?:bằng|là|:)?\s*(\d{2,3}(?:[.,]\d+)?)\s*%`),
		regexp.MustCompile(`(?i)(?:tăng\s+ca|làm\s+thêm\s+giờ?)[^%\n]{0,40}?(\d{2,3}(?:[.,]\d+)?)\s*%`),
	}

	nightWindowPattern = regexp.MustCompile(`(?i)ca\s+đêm\s+(?:được\s+)?tính\s+từ\s+` + clock + `\s*(?:-|–|đến)\s*` + clock)

	sleepRatioPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:thời\s+gian|giờ)\s+ngủ[^%\n]{0,60}?(\d{1,3}(?:[.,]\d+)?)\s*%`),
		regexp.MustCompile(`(?i)ca\s+liên\s+tục[^%\n]{0,60}?ngủ[^%\n]{0,40}?(\d{1,3}(?:[.,]\d+)?)\s*%`),
	}

	minRestPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)nghỉ\s+(?:ngơi\s+)?(?:tối\s+thiểu|ít\s+nhất)\s*[:]?\s*(\d{1,2})\s*giờ`),
		regexp.MustCompile(`(?i)(?:tối\s+thiểu|ít\s+nhất)\s+(\d{1,2})\s*giờ\s+nghỉ`),
	}

	annualLeavePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,2})\s*ngày\s+(?:nghỉ\s+)?phép(?:\s+năm)?`),
		regexp.MustCompile(`(?i)nghỉ\s+phép(?:\s+năm)?\s*[:]?\s*(\d{1,2})\s*ngày`),
	}
	sickLeavePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,2})\s*ngày\s+nghỉ\s+ốm`),
		regexp.MustCompile(`(?i)nghỉ\s+ốm\s*[:]?\s*(\d{1,2})\s*ngày`),
	}

	mealAllowancePattern    = regexp.MustCompile(`(?i)phụ\s+cấp\s+(?:tiền\s+)?(?:ăn|cơm)[^\d\n]{0,20}([\d.,]+)(?:\s*(?:nghìn|ngàn|triệu))?\s*(?:đồng|vnd|vnđ|đ)`)
	uniformAllowancePattern = regexp.MustCompile(`(?i)phụ\s+cấp\s+(?:đồng\s+phục|trang\s+phục)[^\d\n]{0,20}([\d.,]+)(?:\s*(?:nghìn|ngàn|triệu))?\s*(?:đồng|vnd|vnđ|đ)`)

	violationPolicyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:xử\s+lý\s+)?vi\s+phạm\s*[:]\s*([^\n]+)`),
		regexp.MustCompile(`(?i)kỷ\s+luật\s*[:]\s*([^\n]+)`),
	}
)

// ExtractConditions runs every working-condition rule over the whole document.
func ExtractConditions(text string) Conditions {
	var c Conditions

	if v := firstMatch(text, overtimeMaxPatterns); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.OvertimeMaxHours = &n
		}
	}
	if v := firstMatch(text, overtimeRatePatterns); v != "" {
		if r, ok := parsePercent(v); ok {
			c.OvertimeRate = &r
		}
	}

	if m := nightWindowPattern.FindStringSubmatch(text); m != nil {
		if start, ok := normalizeClock(strings.TrimSuffix(m[1], "h") + suffixIfBare(m[1])); ok {
			c.NightShiftStart = &start
		}
		if end, ok := normalizeClock(strings.TrimSuffix(m[2], "h") + suffixIfBare(m[2])); ok {
			c.NightShiftEnd = &end
		}
	}

	if v := firstMatch(text, sleepRatioPatterns); v != "" {
		if r, ok := parsePercent(v); ok {
			c.SleepTimeRatio = &r
		}
	}
	if v := firstMatch(text, minRestPatterns); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MinRestHours = &n
		}
	}

	if v := firstMatch(text, annualLeavePatterns); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.AnnualLeaveDays = &n
		}
	}
	if v := firstMatch(text, sickLeavePatterns); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SickLeaveDays = &n
		}
	}

	if m := mealAllowancePattern.FindStringSubmatch(text); m != nil {
		if amount, ok := parseAmount(m[1], m[0]); ok {
			c.MealAllowance = &amount
		}
	}
	if m := uniformAllowancePattern.FindStringSubmatch(text); m != nil {
		if amount, ok := parseAmount(m[1], m[0]); ok {
			c.UniformAllowance = &amount
		}
	}

	if v := firstMatch(text, violationPolicyPatterns); v != "" {
		policy := strings.TrimRight(v, " .;")
		c.ViolationPolicy = &policy
	}

	return c
}
