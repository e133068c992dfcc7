package utils

import (
	"strconv"
	"strings"

	"courtcast-service/internal/domain/entity"
	"courtcast-service/pkg/logger"
)

// slotKeywords anchor the forward scan for booking times. Checked
// case-insensitively against each normalized line.
var slotKeywords = []string{
	"slot",
	"booking",
	"venue",
	"court",
	"turf",
	"session",
	"order",
	"transaction",
}

// nameNoiseWords reject venue/organization strings captured by the
// customer-name patterns.
var nameNoiseWords = []string{
	"sports",
	"arena",
	"academy",
	"club",
	"turf",
	"court",
	"venue",
	"box",
	"centre",
	"center",
	"ground",
	"gymkhana",
}

// ContentExtractor turns a classified message body into a booking
// candidate using per-platform heuristics with a generic fallback.
type ContentExtractor struct {
	platforms map[string]PlatformExtractor
	generic   *GenericExtractor
	logger    logger.Logger
}

// NewContentExtractor creates an extractor with all platform rules registered
func NewContentExtractor(logger logger.Logger) *ContentExtractor {
	e := &ContentExtractor{
		platforms: make(map[string]PlatformExtractor),
		generic:   &GenericExtractor{},
		logger:    logger,
	}
	for _, p := range []PlatformExtractor{&HudleExtractor{}, &PlayoExtractor{}, &KhelomoreExtractor{}} {
		e.platforms[p.Platform()] = p
	}
	return e
}

// Extract runs the full heuristic pipeline for one message
func (e *ContentExtractor) Extract(platform, subject, body string) BookingCandidate {
	lines := NormalizeBody(body)
	text := strings.Join(lines, "\n")

	fallbackLocation := entity.LocationUnknown
	if platform == entity.PlatformSystem {
		fallbackLocation = entity.LocationAdmin
	}
	location := ResolveLocation(append([]string{subject}, lines...), fallbackLocation)

	slot := selectSlot(collectSlotFragments(lines))
	if slot == entity.SlotMissing && e.logger != nil {
		e.logger.Debug("No booking slot found in message",
			"platform", platform,
			"subject", subject)
	}

	gameDate := ""
	gameTime := ""
	if slot != entity.SlotMissing {
		gameDate = MatchDate(slot)
		gameTime = MergeSlots(MatchTimes(slot))
	}
	if gameDate == "" {
		gameDate = MatchDateBroad(text)
	}
	if gameDate == "" {
		gameDate = entity.DateTBD
	}
	if gameTime == "" {
		gameTime = entity.SlotMissing
	}

	sport := ResolveSport(subject+"\n"+text, entity.SportGeneral)

	name := e.sanitizeName(e.rulesFor(platform).CustomerName(text))
	if name == "" {
		name = e.sanitizeName(e.generic.CustomerName(text))
	}
	if name == "" {
		name = entity.ValueNA
	}

	amount := e.sanitizeAmount(e.rulesFor(platform).PaidAmount(text))
	if amount == "" {
		amount = e.sanitizeAmount(e.generic.PaidAmount(text))
	}
	if amount == "" {
		amount = entity.ValueNA
	}

	return BookingCandidate{
		Platform:     platform,
		Location:     location,
		BookingSlot:  slot,
		GameDate:     gameDate,
		GameTime:     gameTime,
		Sport:        sport,
		CustomerName: name,
		PaidAmount:   amount,
		Message:      subject,
	}
}

func (e *ContentExtractor) rulesFor(platform string) PlatformExtractor {
	if p, ok := e.platforms[platform]; ok {
		return p
	}
	return e.generic
}

// collectSlotFragments finds the keyword-anchored slot line and scans
// a bounded forward window for date- and time-shaped substrings. A
// time-only line is attached to the most recently seen date, or to a
// date found in a small backward window. With no anchor at all, one
// global date+time scan over the whole text is the fallback.
func collectSlotFragments(lines []string) []string {
	anchor := -1
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, kw := range slotKeywords {
			if strings.Contains(lower, kw) {
				anchor = i
				break
			}
		}
		if anchor >= 0 {
			break
		}
	}

	if anchor < 0 {
		return globalSlotScan(lines)
	}

	var frags []string
	lastDate := ""

	limit := anchor + forwardScanWindow
	if limit >= len(lines) {
		limit = len(lines) - 1
	}
	for j := anchor; j <= limit; j++ {
		line := lines[j]
		if IsTransportHeader(line) || IsAuditPhrase(line) {
			continue
		}
		date := MatchDate(line)
		times := MatchTimes(line)

		switch {
		case date != "" && len(times) > 0:
			frags = append(frags, date+TimeSeparator+strings.Join(times, TimeSeparator))
			lastDate = date
		case date != "":
			frags = append(frags, date)
			lastDate = date
		case len(times) > 0:
			if lastDate == "" {
				lastDate = searchDateBackward(lines, anchor)
			}
			if lastDate != "" {
				frags = append(frags, lastDate+TimeSeparator+strings.Join(times, TimeSeparator))
			} else {
				frags = append(frags, strings.Join(times, TimeSeparator))
			}
		}
	}

	if len(frags) == 0 {
		return globalSlotScan(lines)
	}
	return frags
}

func searchDateBackward(lines []string, from int) string {
	low := from - backwardScanWindow
	if low < 0 {
		low = 0
	}
	for j := from - 1; j >= low; j-- {
		if IsTransportHeader(lines[j]) || IsAuditPhrase(lines[j]) {
			continue
		}
		if date := MatchDate(lines[j]); date != "" {
			return date
		}
	}
	return ""
}

func globalSlotScan(lines []string) []string {
	for _, line := range lines {
		if IsTransportHeader(line) || IsAuditPhrase(line) {
			continue
		}
		date := MatchDate(line)
		times := MatchTimes(line)
		if date != "" && len(times) > 0 {
			return []string{date + TimeSeparator + strings.Join(times, TimeSeparator)}
		}
	}
	return nil
}

// selectSlot cleans, deduplicates and joins the surviving fragments.
// Fragments carrying a range or a date are preferred over bare times,
// which suppresses leftover header-timestamp noise.
func selectSlot(frags []string) string {
	seen := make(map[string]bool)
	var cleaned []string
	for _, f := range frags {
		c := strings.Trim(strings.TrimSpace(f), ",.;:-")
		c = strings.TrimSpace(c)
		if c == "" || c == entity.SlotMissing || c == entity.DateTBD || c == entity.ValueNA {
			continue
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		cleaned = append(cleaned, c)
	}

	var preferred []string
	for _, c := range cleaned {
		if MatchDate(c) != "" || hasTimeRange(c) {
			preferred = append(preferred, c)
		}
	}
	if len(preferred) > 0 {
		return strings.Join(preferred, SlotSeparator)
	}
	if len(cleaned) > 0 {
		return cleaned[0]
	}
	return entity.SlotMissing
}

func hasTimeRange(s string) bool {
	for _, m := range MatchTimes(s) {
		if rangeSplitRe.MatchString(m) {
			return true
		}
	}
	return false
}

func (e *ContentExtractor) sanitizeName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.Trim(name, ",.;:-")
	name = spaceRunRe.ReplaceAllString(name, " ")
	if name == "" || len(name) > maxCustomerNameLen {
		return ""
	}
	lower := strings.ToLower(name)
	for _, noise := range nameNoiseWords {
		if strings.Contains(lower, noise) {
			return ""
		}
	}
	if strings.ContainsAny(name, "0123456789") {
		return ""
	}
	return name
}

func (e *ContentExtractor) sanitizeAmount(raw string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return ""
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return ""
	}
	if value < minPlausibleAmount || value > maxPlausibleAmount {
		return ""
	}
	return "₹" + cleaned
}
