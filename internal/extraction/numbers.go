package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Currency-like captures in these documents write thousands separators with
// either "." or "," and often carry a unit word instead of trailing zeros
// ("30 nghìn đồng", "1,5 triệu").

var unitMultipliers = []struct {
	words []string
	mult  int64
}{
	{[]string{"triệu", "trieu"}, 1_000_000},
	{[]string{"nghìn", "ngàn", "nghin", "ngan"}, 1_000},
}

var separatorReplacer = strings.NewReplacer(".", "", ",", "")

// parseAmount parses a numeric capture together with the full matched text so
// a unit word next to the number can scale it.
func parseAmount(capture, matched string) (int64, bool) {
	cleaned := separatorReplacer.Replace(strings.TrimSpace(capture))
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, false
	}

	lower := strings.ToLower(matched)
	for _, u := range unitMultipliers {
		for _, w := range u.words {
			if strings.Contains(lower, w) {
				return n * u.mult, true
			}
		}
	}
	return n, true
}

// parsePercent turns "150" or "150%" into 1.5.
func parsePercent(capture string) (float64, bool) {
	cleaned := strings.TrimSuffix(strings.TrimSpace(capture), "%")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v / 100, true
}

var timeToken = regexp.MustCompile(`^(\d{1,2})[h:.](\d{2})?$`)

// normalizeClock accepts "8:00", "08h30", "22h" and returns "HH:MM".
func normalizeClock(s string) (string, bool) {
	s = strings.TrimSpace(s)
	m := timeToken.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return "", false
	}
	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return "", false
		}
	}
	return twoDigits(hour) + ":" + twoDigits(minute), true
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
