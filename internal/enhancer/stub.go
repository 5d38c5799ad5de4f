package enhancer

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"shopswift/internal/domain"
)

var baseSuggestions = []string{
	"Add specific technical specifications",
	"Include customer testimonials or reviews",
	"Highlight warranty and support information",
	"Add comparison with competitors",
	"Include usage tips and best practices",
}

var categorySuggestions = map[string][]string{
	domain.CategoryElectronics: {
		"Add compatibility information",
		"Include power requirements",
		"Mention connectivity options",
	},
	domain.CategoryClothing: {
		"Add size and fit information",
		"Include care instructions",
		"Mention material composition",
	},
	domain.CategoryHomeGarden: {
		"Add installation requirements",
		"Include maintenance tips",
		"Mention safety considerations",
	},
	domain.CategorySports: {
		"Add skill level requirements",
		"Include safety guidelines",
		"Mention training recommendations",
	},
}

// Stub simulates a remote service: it waits, then returns templated copy.
type Stub struct {
	delay  time.Duration
	random func() float64
}

func NewStub(delay time.Duration) *Stub {
	return &Stub{delay: delay, random: rand.Float64}
}

func (s *Stub) Enhance(ctx context.Context, req Request) (*Result, error) {
	req, err := checkRequest(req)
	if err != nil {
		return nil, err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrEnhancementFailed, ctx.Err())
		case <-timer.C:
		}
	}

	suggestions := Suggestions(req.Category)
	return &Result{
		EnhancedDescription: stubDescription(req),
		Feedback:            fmt.Sprintf("Generated %d suggestions to strengthen this listing.", len(suggestions)),
		Suggestions:         suggestions,
		Confidence:          0.7 + s.random()*0.3,
	}, nil
}

// Suggestions returns the general copy suggestions followed by any specific
// to category.
func Suggestions(category string) []string {
	out := append([]string(nil), baseSuggestions...)
	return append(out, categorySuggestions[category]...)
}

func stubDescription(req Request) string {
	lines := []string{
		"Enhanced with AI: " + req.Description,
		"",
		fmt.Sprintf("Our AI analysis of \"%s\" in the %s category reveals:", req.Name, req.Category),
		"",
		"✨ Key Benefits:",
		"• Premium quality materials and construction",
		"• Innovative design features for enhanced usability",
		"• Excellent customer satisfaction ratings",
		"• Competitive pricing in the market",
		"• Reliable performance and durability",
		"",
		"🚀 SEO Optimized Features:",
		"• Enhanced keyword integration",
		"• Improved readability and engagement",
		"• Better conversion potential",
		"",
		"💡 Customer Appeal:",
		"• Addresses common pain points",
		"• Highlights unique selling propositions",
		"• Builds trust and credibility",
	}
	return strings.Join(lines, "\n")
}
