package gemini

import (
	"context"
	"strings"

	"github.com/tickerlens/tickerlens"
	"google.golang.org/genai"
)

// Ensure Summarizer implements tickerlens.Summarizer at compile time.
var _ tickerlens.Summarizer = (*Summarizer)(nil)

// Summarizer condenses article text using Google Gemini.
type Summarizer struct {
	client *genai.Client
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(client *genai.Client) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize returns a one-paragraph English summary of the text.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	out, err := generate(ctx, s.client, text, SummarizeConfig())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// SummarizeConfig returns the GenerateContentConfig for summarization
// calls.
func SummarizeConfig() *genai.GenerateContentConfig {
	return systemConfig(
		"Summarize the input text below. "+
			"Limit the summary to 1 paragraph. "+
			"Use an advanced reading level similar to the input text, and ensure that all people, places, and other proper names and dates are included in the summary. "+
			"When possible, keep buy/hold/sell ratings, challenges the company faces, and financial information in the summary. "+
			"The summary should be in English. Only include the summary.",
		0.4,
	)
}
