// Package scanner classifies free-form message text for off-platform contact
// sharing and related policy violations. It is a pure, stateless component:
// an ordered list of matcher strategies is run over the text and the highest
// severity found wins, so patterns can be added or removed without touching
// call sites.
package scanner

import (
	"strings"

	"festago/backend/internal/models"
)

// DetectionCategory names what kind of pattern matched.
type DetectionCategory string

const (
	CategoryPhone          DetectionCategory = "phone"
	CategoryEmail          DetectionCategory = "email"
	CategoryPlatform       DetectionCategory = "messaging_platform"
	CategoryContactRequest DetectionCategory = "contact_request"
	CategorySocialHandle   DetectionCategory = "social_handle"
	CategoryURL            DetectionCategory = "url"
	CategoryNone           DetectionCategory = "none"
)

// Detection is the result of analyzing one message.
type Detection struct {
	Category    DetectionCategory `json:"category"`
	Severity    models.Severity   `json:"severity"`
	MatchedText string            `json:"matched_text,omitempty"`
}

// Blocks reports whether the message must not be delivered.
func (d Detection) Blocks() bool { return d.Severity == models.SeverityHigh }

// Warns reports whether the message may be delivered with a warning.
func (d Detection) Warns() bool { return d.Severity == models.SeverityMedium }

// Matcher is one detection strategy. Implementations must be pure.
type Matcher interface {
	Match(text string) (Detection, bool)
}

// Scanner runs its matchers in priority order over a message.
type Scanner struct {
	matchers []Matcher
}

// New returns a Scanner with the default matcher set, ordered high-severity
// patterns first.
func New() *Scanner {
	return &Scanner{matchers: defaultMatchers()}
}

// NewWithMatchers returns a Scanner with a custom matcher list, used by tests
// and by operators tuning the pattern set.
func NewWithMatchers(matchers ...Matcher) *Scanner {
	return &Scanner{matchers: matchers}
}

// Analyze classifies the text. All matchers run so that overlapping matches
// resolve to the highest severity found; an empty or whitespace-only string
// yields a none result. Analyze never fails: unmatched or unparseable input
// degrades to none rather than blocking legitimate traffic.
func (s *Scanner) Analyze(text string) Detection {
	none := Detection{Category: CategoryNone, Severity: models.SeverityNone}
	if strings.TrimSpace(text) == "" {
		return none
	}

	best := none
	for _, m := range s.matchers {
		d, ok := m.Match(text)
		if !ok {
			continue
		}
		if d.Severity.Rank() > best.Severity.Rank() {
			best = d
		}
	}
	return best
}
