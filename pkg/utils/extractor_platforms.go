package utils

import (
	"regexp"

	"courtcast-service/internal/domain/entity"
)

// currencyAmountRe matches rupee-prefixed amounts common to all
// platforms: "₹ 1,200", "Rs. 750", "INR 900.50"
var currencyAmountRe = regexp.MustCompile(`(?i)(?:₹|rs\.?|inr)\s*([\d,]+(?:\.\d{1,2})?)`)

func firstGroup(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	return ""
}

// HudleExtractor handles Hudle confirmation mail formatting
type HudleExtractor struct{}

var (
	hudleNameRe   = regexp.MustCompile(`(?i)booked by[:\s]+([A-Za-z][A-Za-z .']{0,60})`)
	hudleAmountRe = regexp.MustCompile(`(?i)(?:amount paid|total paid|paid)[^0-9₹]*(?:₹|rs\.?|inr)?\s*([\d,]+(?:\.\d{1,2})?)`)
)

func (h *HudleExtractor) Platform() string { return entity.PlatformHudle }

func (h *HudleExtractor) CustomerName(text string) string {
	return firstGroup(hudleNameRe, text)
}

func (h *HudleExtractor) PaidAmount(text string) string {
	if m := firstGroup(hudleAmountRe, text); m != "" {
		return m
	}
	return firstGroup(currencyAmountRe, text)
}

// PlayoExtractor handles Playo confirmation mail formatting
type PlayoExtractor struct{}

var (
	playoNameRe   = regexp.MustCompile(`(?i)name\s*:\s*([A-Za-z][A-Za-z .']{0,60})`)
	playoAmountRe = regexp.MustCompile(`(?i)(?:total|amount|advance)[^0-9₹\n]*(?:₹|rs\.?|inr)?\s*([\d,]+(?:\.\d{1,2})?)`)
)

func (p *PlayoExtractor) Platform() string { return entity.PlatformPlayo }

func (p *PlayoExtractor) CustomerName(text string) string {
	return firstGroup(playoNameRe, text)
}

func (p *PlayoExtractor) PaidAmount(text string) string {
	if m := firstGroup(currencyAmountRe, text); m != "" {
		return m
	}
	return firstGroup(playoAmountRe, text)
}

// KhelomoreExtractor handles KheloMore confirmation mail formatting
type KhelomoreExtractor struct{}

var (
	khelomoreNameRe = regexp.MustCompile(`(?i)(?:player|booked for)\s*:?\s+([A-Za-z][A-Za-z .']{0,60})`)
)

func (k *KhelomoreExtractor) Platform() string { return entity.PlatformKhelomore }

func (k *KhelomoreExtractor) CustomerName(text string) string {
	return firstGroup(khelomoreNameRe, text)
}

func (k *KhelomoreExtractor) PaidAmount(text string) string {
	return firstGroup(currencyAmountRe, text)
}

// GenericExtractor is the fallback rule set for platforms without a
// dedicated extractor (District, System) and for platform rules that
// come up empty.
type GenericExtractor struct{}

var (
	genericNameRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)booked by[:\s]+([A-Za-z][A-Za-z .']{0,60})`),
		regexp.MustCompile(`(?i)(?:customer|name)\s*:\s*([A-Za-z][A-Za-z .']{0,60})`),
		regexp.MustCompile(`(?i)booked for\s+([A-Za-z][A-Za-z .']{0,60})`),
	}
	genericAmountRes = []*regexp.Regexp{
		currencyAmountRe,
		regexp.MustCompile(`(?i)(?:amount|total|paid)\s*[:\-]?\s*([\d,]+(?:\.\d{1,2})?)`),
	}
)

func (g *GenericExtractor) Platform() string { return "" }

func (g *GenericExtractor) CustomerName(text string) string {
	for _, re := range genericNameRes {
		if m := firstGroup(re, text); m != "" {
			return m
		}
	}
	return ""
}

func (g *GenericExtractor) PaidAmount(text string) string {
	for _, re := range genericAmountRes {
		if m := firstGroup(re, text); m != "" {
			return m
		}
	}
	return ""
}
