package scanner

import (
	"regexp"
	"strings"

	"festago/backend/internal/models"
)

var (
	// phoneCandidate finds digit runs with the separators people actually
	// use (spaces, dots, dashes, parentheses, country codes). Candidates are
	// confirmed by digit count so prices and dates do not trip it.
	phoneCandidate = regexp.MustCompile(`\+?\d[\d\s().\-]{5,}\d`)

	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	urlPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)

	// handlePattern catches bare social handles; the leading boundary keeps
	// it from firing on the @ inside an email address.
	handlePattern = regexp.MustCompile(`(^|\s)@[a-zA-Z0-9_.]{3,}`)
)

const phoneMinDigits = 7

// platformKeywords are third-party messaging platforms whose mention in a
// marketplace conversation is a contact-exchange signal.
var platformKeywords = []string{
	"whatsapp", "telegram", "viber", "signal", "wechat", "imessage", "messenger", "zap",
}

// contactKeywords are explicit requests to exchange contact information.
var contactKeywords = []string{
	"call me", "my number", "email me", "text me", "reach me at",
	"contact me at", "meu numero", "meu número", "liga-me",
}

// socialKeywords are generic social-network mentions, informational only.
var socialKeywords = []string{
	"instagram", "facebook", "tiktok", "snapchat", "twitter",
}

// PhoneMatcher detects phone numbers in their various separator and
// country-code forms.
type PhoneMatcher struct{}

func (PhoneMatcher) Match(text string) (Detection, bool) {
	for _, candidate := range phoneCandidate.FindAllString(text, -1) {
		digits := 0
		for _, r := range candidate {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= phoneMinDigits {
			return Detection{Category: CategoryPhone, Severity: models.SeverityHigh, MatchedText: candidate}, true
		}
	}
	return Detection{}, false
}

// EmailMatcher detects email addresses.
type EmailMatcher struct{}

func (EmailMatcher) Match(text string) (Detection, bool) {
	if m := emailPattern.FindString(text); m != "" {
		return Detection{Category: CategoryEmail, Severity: models.SeverityHigh, MatchedText: m}, true
	}
	return Detection{}, false
}

// PlatformMatcher detects mentions of third-party messaging platforms.
type PlatformMatcher struct{}

func (PlatformMatcher) Match(text string) (Detection, bool) {
	if kw, ok := containsAny(text, platformKeywords); ok {
		return Detection{Category: CategoryPlatform, Severity: models.SeverityMedium, MatchedText: kw}, true
	}
	return Detection{}, false
}

// ContactRequestMatcher detects explicit requests to exchange contact info.
type ContactRequestMatcher struct{}

func (ContactRequestMatcher) Match(text string) (Detection, bool) {
	if kw, ok := containsAny(text, contactKeywords); ok {
		return Detection{Category: CategoryContactRequest, Severity: models.SeverityMedium, MatchedText: kw}, true
	}
	return Detection{}, false
}

// SocialHandleMatcher detects bare @handles and generic social mentions.
type SocialHandleMatcher struct{}

func (SocialHandleMatcher) Match(text string) (Detection, bool) {
	if m := handlePattern.FindString(text); m != "" {
		return Detection{Category: CategorySocialHandle, Severity: models.SeverityLow, MatchedText: strings.TrimSpace(m)}, true
	}
	if kw, ok := containsAny(text, socialKeywords); ok {
		return Detection{Category: CategorySocialHandle, Severity: models.SeverityLow, MatchedText: kw}, true
	}
	return Detection{}, false
}

// URLMatcher detects bare links not caught by a blocking pattern.
type URLMatcher struct{}

func (URLMatcher) Match(text string) (Detection, bool) {
	if m := urlPattern.FindString(text); m != "" {
		return Detection{Category: CategoryURL, Severity: models.SeverityLow, MatchedText: m}, true
	}
	return Detection{}, false
}

func containsAny(text string, keywords []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}

func defaultMatchers() []Matcher {
	return []Matcher{
		PhoneMatcher{},
		EmailMatcher{},
		PlatformMatcher{},
		ContactRequestMatcher{},
		SocialHandleMatcher{},
		URLMatcher{},
	}
}
