package extraction

import (
	"regexp"
	"strings"
)

// Section-scoped search is a two-phase operation: locate the marker, then run
// the same patterns against a bounded window after it. Fields restricted to a
// section yield nothing when the marker is absent; generic fields fall back to
// a whole-document scan.

const (
	// window sizes (runes) after a located marker
	counterpartyWindow = 700
	articleWindow      = 900
)

var (
	// The counterparty (client) block. BÊN A is the service provider in this
	// document family, BÊN B the paying customer.
	counterpartyMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)BÊN\s*B\s*[:(]`),
		regexp.MustCompile(`(?i)BÊN\s+THUÊ\s+DỊCH\s+VỤ`),
		regexp.MustCompile(`(?i)BÊN\s+SỬ\s+DỤNG\s+DỊCH\s+VỤ`),
	}

	// ĐIỀU 1 describes the protected site.
	locationArticleMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ĐIỀU\s*1\b`),
		regexp.MustCompile(`(?i)DIEU\s*1\b`),
	}

	// The contract-term article, where the period dates live.
	termArticleMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ĐIỀU\s*5\b`),
		regexp.MustCompile(`(?i)THỜI\s+HẠN\s+HỢP\s+ĐỒNG`),
	}
)

// sectionWindow returns at most size runes of text following the first marker
// that matches, and whether any marker was found.
func sectionWindow(text string, markers []*regexp.Regexp, size int) (string, bool) {
	for _, m := range markers {
		loc := m.FindStringIndex(text)
		if loc == nil {
			continue
		}
		rest := []rune(text[loc[1]:])
		if len(rest) > size {
			rest = rest[:size]
		}
		return string(rest), true
	}
	return "", false
}

// counterpartySection is the window most customer-identity rules search first.
func counterpartySection(text string) (string, bool) {
	return sectionWindow(text, counterpartyMarkers, counterpartyWindow)
}

func locationSection(text string) (string, bool) {
	return sectionWindow(text, locationArticleMarkers, articleWindow)
}

func termSection(text string) (string, bool) {
	return sectionWindow(text, termArticleMarkers, articleWindow)
}

// firstMatch runs ordered pattern templates and returns the first capture.
func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// scopedMatch searches the section window first and falls back to the whole
// document when the marker is absent. Rules restricted to their section call
// sectionWindow directly instead.
func scopedMatch(text string, section func(string) (string, bool), patterns []*regexp.Regexp) string {
	if window, ok := section(text); ok {
		if v := firstMatch(window, patterns); v != "" {
			return v
		}
		return ""
	}
	return firstMatch(text, patterns)
}
