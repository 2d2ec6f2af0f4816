package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/tickerlens/tickerlens"
	"google.golang.org/genai"
)

// Ensure Answerer implements tickerlens.Answerer at compile time.
var _ tickerlens.Answerer = (*Answerer)(nil)

// ClarificationMessage is returned without a model call when the
// evidence bundle is insufficient to answer anything.
const ClarificationMessage = "Please include the name of the company or its ticker and your question in complete sentences."

// Answerer generates the final answer from an evidence bundle using
// Google Gemini.
type Answerer struct {
	client *genai.Client
}

// NewAnswerer creates a new Answerer.
func NewAnswerer(client *genai.Client) *Answerer {
	return &Answerer{client: client}
}

// Answer generates an answer to the query grounded in the bundle. An
// insufficient bundle short-circuits with ClarificationMessage before
// any model call.
func (a *Answerer) Answer(ctx context.Context, query string, bundle *tickerlens.EvidenceBundle) (string, error) {
	if query == "" {
		return "", tickerlens.Errorf(tickerlens.EINVALID, "query required")
	}
	if bundle == nil || bundle.Insufficient {
		return ClarificationMessage, nil
	}

	return generate(ctx, a.client, BuildAnswerPrompt(query, bundle), AnswerConfig())
}

// AnswerConfig returns the GenerateContentConfig for answer generation.
func AnswerConfig() *genai.GenerateContentConfig {
	return systemConfig(
		"You are a professional financial news analyst answering questions based solely on the provided market data, stock recommendations, and article summaries. "+
			"Do not take into account any knowledge outside of the provided evidence. "+
			"Your responses must be concise, accurate, and directly address the user's question in at most three complete sentences. "+
			"Do not add any extra details, opinions, or unnecessary explanations. "+
			"You are not allowed to mention the source of your information. "+
			"Only use the stock recommendations if no specific source is requested since they are aggregated across many sources. "+
			"Present the information as if you have done the research yourself. "+
			"Include 'Yes' or 'No' in your answer when applicable.",
		0.4,
	)
}

// BuildAnswerPrompt builds the user prompt containing the evidence and
// the question.
func BuildAnswerPrompt(query string, bundle *tickerlens.EvidenceBundle) string {
	var sb strings.Builder

	if len(bundle.Facts) > 0 {
		sb.WriteString("<market_data>\n")
		for _, facts := range bundle.Facts {
			sb.WriteString("<symbol_facts>\n")
			sb.WriteString(facts.String())
			sb.WriteString("\n</symbol_facts>\n")
		}
		sb.WriteString("</market_data>\n\n")
	}

	if len(bundle.Documents) > 0 {
		sb.WriteString("<articles>\n")
		for i, doc := range bundle.Documents {
			title := doc.Title
			if title == "" {
				title = doc.URL
			}
			sb.WriteString("<article>\n")
			fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
			fmt.Fprintf(&sb, "<title>%s</title>\n", title)
			fmt.Fprintf(&sb, "<source>%s</source>\n", doc.URL)
			fmt.Fprintf(&sb, "<summary>%s</summary>\n", doc.Summary)
			sb.WriteString("</article>\n")
		}
		sb.WriteString("</articles>\n\n")
	}

	fmt.Fprintf(&sb, "Question: %s", query)
	return sb.String()
}
