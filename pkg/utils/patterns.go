package utils

import (
	"regexp"
	"strings"
)

const monthPattern = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sept?(?:ember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`

var (
	// "06 Feb '26", "21st Jun 2025", "6 February, 2026"
	dayMonthYearRe = regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?[ -]` + monthPattern + `\.?,?\s*'?\d{2,4}\b`)
	// "Feb 06, 2026"
	monthDayYearRe = regexp.MustCompile(`(?i)\b` + monthPattern + `\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b`)
	// "06/02/2026", "6-2-26"
	numericDateRe = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	// "06 Feb" with no year, used only by the broad fallback scan
	dayMonthRe = regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?[ -]` + monthPattern + `\b`)

	timeRangeRe = regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*(?:am|pm)?\s*(?:-|–|to)\s*\d{1,2}(?::\d{2})?\s*(?:am|pm)?\b`)
	bareTimeRe  = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:am|pm)?\b|\b\d{1,2}\s*(?:am|pm)\b`)
)

// MatchDate returns the first date-shaped substring of s, trying the
// pattern cascade in a fixed order, or "" if none matches.
func MatchDate(s string) string {
	for _, re := range []*regexp.Regexp{dayMonthYearRe, monthDayYearRe, numericDateRe} {
		if m := re.FindString(s); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// MatchDateBroad is MatchDate plus a year-less day-month form. Used as
// the last-resort scan over the whole body before giving up on a date.
func MatchDateBroad(s string) string {
	if m := MatchDate(s); m != "" {
		return m
	}
	return strings.TrimSpace(dayMonthRe.FindString(s))
}

// MatchTimes returns all time-shaped substrings of s: ranges first,
// then bare times that are not already covered by a range match. A
// candidate must carry a colon or an am/pm marker somewhere, which
// keeps dashed numeric dates from being read as ranges.
func MatchTimes(s string) []string {
	var out []string
	rangeSpans := timeRangeRe.FindAllStringIndex(s, -1)
	var kept [][]int
	for _, span := range rangeSpans {
		m := s[span[0]:span[1]]
		if !hasClockShape(m) {
			continue
		}
		out = append(out, strings.TrimSpace(m))
		kept = append(kept, span)
	}
	for _, span := range bareTimeRe.FindAllStringIndex(s, -1) {
		covered := false
		for _, rs := range kept {
			if span[0] >= rs[0] && span[1] <= rs[1] {
				covered = true
				break
			}
		}
		if covered {
			continue
		}
		out = append(out, strings.TrimSpace(s[span[0]:span[1]]))
	}
	return out
}

func hasClockShape(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, ":") || strings.Contains(lower, "am") || strings.Contains(lower, "pm")
}

// IsTransportHeader reports whether a line looks like a quoted mail
// header ("Date:", "Sent:", ...) whose timestamp must not be mistaken
// for a booking time.
func IsTransportHeader(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	for _, prefix := range []string{"date:", "sent:", "from:", "to:", "cc:", "subject:", "reply-to:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// IsAuditPhrase reports whether a line carries an administrative audit
// timestamp ("booked on", "cancelled on") rather than a booking slot.
func IsAuditPhrase(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range []string{"cancelled on", "canceled on", "booked on", "paid on", "created on", "modified on"} {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
