package usecase

import (
	"strings"

	"courtcast-service/internal/domain/entity"
)

// reviewKeywords reject a message before any platform matching, so
// "rate your booking" follow-ups never enter the pipeline.
var reviewKeywords = []string{
	"review",
	"feedback",
	"rate your",
	"rating",
	"how was your",
}

type platformRule struct {
	tag      string
	keywords []string
}

// platformRules are evaluated in a fixed priority order; the first
// matching rule wins.
var platformRules = []platformRule{
	{entity.PlatformHudle, []string{"hudle"}},
	{entity.PlatformPlayo, []string{"playo"}},
	{entity.PlatformKhelomore, []string{"khelomore"}},
	{entity.PlatformDistrict, []string{"district by zomato", "district app", "districtapp"}},
	{entity.PlatformSystem, []string{"booking confirmed", "booking confirmation", "slot booked", "court booked", "payment received for booking"}},
}

// ClassifyPlatform maps a message's subject and sender headers to a
// platform tag. Returns ok=false when the message is a review/feedback
// mail or matches no platform; such messages are discarded entirely.
func ClassifyPlatform(subject, sender string) (string, bool) {
	text := strings.ToLower(subject + " " + sender)

	for _, kw := range reviewKeywords {
		if strings.Contains(text, kw) {
			return "", false
		}
	}

	for _, rule := range platformRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.tag, true
			}
		}
	}

	return "", false
}
