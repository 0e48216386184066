package extraction

import (
	"regexp"
	"strings"
)

// Shift-time lines look like "Ca sáng: 08:00 - 17:00" or "ca đêm từ 22h00 đến
// 6h00". The day name is normalized into a small closed vocabulary by
// substring containment, never exact match, because the source text freely
// mixes "ca tối", "buổi tối", "tối" and so on.

var dayVocabulary = []struct {
	label string
	cues  []string
}{
	{"weekend", []string{"cuối tuần"}},
	{"morning", []string{"sáng"}},
	{"noon", []string{"trưa"}},
	{"afternoon", []string{"chiều"}},
	{"night", []string{"đêm"}},
	{"evening", []string{"tối"}},
}

// normalizeDayLabel maps a raw day phrase onto the closed vocabulary. Empty
// result means the phrase is not a recognized shift label.
func normalizeDayLabel(raw string) string {
	lower := strings.ToLower(raw)
	for _, d := range dayVocabulary {
		for _, cue := range d.cues {
			if strings.Contains(lower, cue) {
				return d.label
			}
		}
	}
	return ""
}

const clock = `(\d{1,2}(?:[h:.]\d{2})?h?)`

var shiftLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ca\s+([^\s:]+(?:\s+tuần)?)\s*[:]?\s*(?:từ\s+)?` + clock + `\s*(?:-|–|đến)\s*` + clock),
	regexp.MustCompile(`(?i)buổi\s+([^\s:]+(?:\s+tuần)?)\s*[:]?\s*(?:từ\s+)?` + clock + `\s*(?:-|–|đến)\s*` + clock),
}

// ExtractShiftBlocks returns every recognized shift line in document order,
// at most one block per vocabulary label.
func ExtractShiftBlocks(text string) []ShiftBlock {
	var blocks []ShiftBlock
	seen := map[string]bool{}

	for _, p := range shiftLinePatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			label := normalizeDayLabel(m[1])
			if label == "" || seen[label] {
				continue
			}
			start, okStart := normalizeClock(strings.TrimSuffix(m[2], "h") + suffixIfBare(m[2]))
			end, okEnd := normalizeClock(strings.TrimSuffix(m[3], "h") + suffixIfBare(m[3]))
			block := ShiftBlock{Label: label}
			if okStart {
				block.StartTime = start
			}
			if okEnd {
				block.EndTime = end
			}
			seen[label] = true
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// suffixIfBare pads a bare-hour token ("22h", "8") so normalizeClock sees a
// minute part.
func suffixIfBare(tok string) string {
	tok = strings.TrimSuffix(tok, "h")
	if !strings.ContainsAny(tok, "h:.") {
		return ":00"
	}
	return ""
}
