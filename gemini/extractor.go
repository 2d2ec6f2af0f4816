package gemini

import (
	"context"
	"strings"

	"github.com/tickerlens/tickerlens"
	"google.golang.org/genai"
)

// Ensure EntityExtractor implements tickerlens.EntityExtractor at compile time.
var _ tickerlens.EntityExtractor = (*EntityExtractor)(nil)

// Parsing limits for model output. Output exceeding them is treated as
// unusable and discarded rather than partially trusted.
const (
	maxEntityLines = 8
	maxEntityLen   = 48
)

// noEntitySentinel is the constrained "nothing found" response the
// extraction prompt asks the model to produce.
const noEntitySentinel = "NONE"

// EntityExtractor infers company names or tickers from free text using
// Google Gemini.
type EntityExtractor struct {
	client *genai.Client
}

// NewEntityExtractor creates a new EntityExtractor.
func NewEntityExtractor(client *genai.Client) *EntityExtractor {
	return &EntityExtractor{client: client}
}

// ExtractEntities returns the companies or tickers mentioned in the text,
// one per model output line. Unusable model output yields an empty
// result, never an error; transport failures propagate.
func (e *EntityExtractor) ExtractEntities(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	out, err := generate(ctx, e.client, text, ExtractConfig())
	if err != nil {
		return nil, err
	}
	return ParseEntityLines(out), nil
}

// ExtractConfig returns the GenerateContentConfig for extraction calls.
// Temperature is zero since the output must be machine-parseable.
func ExtractConfig() *genai.GenerateContentConfig {
	return systemConfig(
		"Identify the companies or stock tickers the user is asking about. "+
			"Prioritize common stocks from NASDAQ and NYSE. "+
			"Respond with one company name or ticker per line and nothing else. "+
			"If the query mentions no company, respond with the single word NONE.",
		0,
	)
}

// ParseEntityLines parses line-delimited extraction output. The NONE
// sentinel, an empty response, or output that violates the constrained
// format all yield nil.
func ParseEntityLines(out string) []string {
	var entities []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.Trim(line, "\"'")
		if !isDottedTicker(line) {
			line = strings.TrimSuffix(line, ".")
		}
		if line == "" {
			continue
		}
		if strings.EqualFold(line, noEntitySentinel) {
			return nil
		}
		if !validEntityLine(line) {
			return nil
		}
		entities = append(entities, line)
	}
	if len(entities) > maxEntityLines {
		return nil
	}
	return entities
}

// validEntityLine reports whether a line looks like a company name or
// ticker rather than model prose.
func validEntityLine(line string) bool {
	if len(line) > maxEntityLen {
		return false
	}
	if strings.ContainsAny(line, ".,!?:;") && !isDottedTicker(line) {
		return false
	}
	return true
}

// isDottedTicker allows class-share tickers like BRK.B through the
// punctuation check.
func isDottedTicker(line string) bool {
	parts := strings.Split(line, ".")
	if len(parts) != 2 {
		return false
	}
	for _, p := range parts {
		if p == "" || p != strings.ToUpper(p) {
			return false
		}
	}
	return true
}
