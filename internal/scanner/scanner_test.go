package scanner_test

import (
	"testing"

	"festago/backend/internal/models"
	"festago/backend/internal/scanner"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzePhoneNumber(t *testing.T) {
	sc := scanner.New()

	d := sc.Analyze("call me at +244 923 456 789")
	assert.Equal(t, scanner.CategoryPhone, d.Category)
	assert.Equal(t, models.SeverityHigh, d.Severity)
	assert.True(t, d.Blocks())
}

func TestAnalyzePhoneVariants(t *testing.T) {
	sc := scanner.New()

	variants := []string{
		"912345678",
		"(912) 345-678",
		"912.345.678",
		"+1 415 555 0132",
		"my digits 912-345-678 ok?",
	}
	for _, text := range variants {
		d := sc.Analyze(text)
		assert.Equal(t, scanner.CategoryPhone, d.Category, "text: %q", text)
		assert.Equal(t, models.SeverityHigh, d.Severity, "text: %q", text)
	}
}

func TestAnalyzeEmail(t *testing.T) {
	sc := scanner.New()

	d := sc.Analyze("write to joao.silva@example.com please")
	assert.Equal(t, scanner.CategoryEmail, d.Category)
	assert.Equal(t, models.SeverityHigh, d.Severity)
}

func TestAnalyzeMessagingPlatform(t *testing.T) {
	sc := scanner.New()

	d := sc.Analyze("find me on whatsapp")
	assert.Equal(t, scanner.CategoryPlatform, d.Category)
	assert.Equal(t, models.SeverityMedium, d.Severity)
	assert.True(t, d.Warns())
	assert.False(t, d.Blocks())
}

func TestAnalyzeContactRequest(t *testing.T) {
	sc := scanner.New()

	d := sc.Analyze("just email me later, ok?")
	assert.Equal(t, scanner.CategoryContactRequest, d.Category)
	assert.Equal(t, models.SeverityMedium, d.Severity)
}

func TestAnalyzeSocialHandle(t *testing.T) {
	sc := scanner.New()

	d := sc.Analyze("I post everything as @party_decor_lobito")
	assert.Equal(t, scanner.CategorySocialHandle, d.Category)
	assert.Equal(t, models.SeverityLow, d.Severity)
}

func TestAnalyzeBareURL(t *testing.T) {
	sc := scanner.New()

	d := sc.Analyze("my portfolio is at https://example.com/gallery")
	assert.Equal(t, scanner.CategoryURL, d.Category)
	assert.Equal(t, models.SeverityLow, d.Severity)
}

// TestAnalyzeOverlapHighestSeverityWins: "call me at <phone>" matches both
// the contact-request keywords (medium) and the phone pattern (high); the
// highest severity must win.
func TestAnalyzeOverlapHighestSeverityWins(t *testing.T) {
	sc := scanner.New()

	d := sc.Analyze("call me at 912 345 678")
	assert.Equal(t, scanner.CategoryPhone, d.Category)
	assert.Equal(t, models.SeverityHigh, d.Severity)
}

func TestAnalyzeCleanMessage(t *testing.T) {
	sc := scanner.New()

	d := sc.Analyze("nice dress!")
	assert.Equal(t, scanner.CategoryNone, d.Category)
	assert.Equal(t, models.SeverityNone, d.Severity)
	assert.False(t, d.Blocks())
	assert.False(t, d.Warns())
}

func TestAnalyzeEmptyInput(t *testing.T) {
	sc := scanner.New()

	for _, text := range []string{"", "   ", "\n\t "} {
		d := sc.Analyze(text)
		assert.Equal(t, scanner.CategoryNone, d.Category, "text: %q", text)
		assert.Equal(t, models.SeverityNone, d.Severity)
	}
}

// TestAnalyzeShortNumbersPass keeps prices and quantities from tripping the
// phone matcher.
func TestAnalyzeShortNumbersPass(t *testing.T) {
	sc := scanner.New()

	d := sc.Analyze("the package costs 25 000 for 3 hours")
	assert.NotEqual(t, scanner.CategoryPhone, d.Category)
}

// TestCustomMatcherOrder verifies matchers can be swapped without touching
// call sites.
func TestCustomMatcherOrder(t *testing.T) {
	sc := scanner.NewWithMatchers(scanner.EmailMatcher{})

	d := sc.Analyze("find me on whatsapp") // no email matcher hit
	assert.Equal(t, scanner.CategoryNone, d.Category)
}
