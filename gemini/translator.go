package gemini

import (
	"context"
	"strings"

	"github.com/tickerlens/tickerlens"
	"google.golang.org/genai"
)

// Ensure Translator implements tickerlens.Translator at compile time.
var _ tickerlens.Translator = (*Translator)(nil)

// Translator renders article text into English using Google Gemini.
type Translator struct {
	client *genai.Client
}

// NewTranslator creates a new Translator.
func NewTranslator(client *genai.Client) *Translator {
	return &Translator{client: client}
}

// Translate returns an English rendition of the text.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	out, err := generate(ctx, t.client, text, TranslateConfig())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// TranslateConfig returns the GenerateContentConfig for translation calls.
func TranslateConfig() *genai.GenerateContentConfig {
	return systemConfig(
		"Translate the input text below into English. "+
			"Preserve the meaning and tone, and ensure that all people, places, organizations, dates, and financial figures are carried over exactly. "+
			"Only include the translation.",
		0,
	)
}
