package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tickerlens/tickerlens"
	main "github.com/tickerlens/tickerlens/cmd/tickerlens"
	"github.com/tickerlens/tickerlens/mock"
)

func TestDocsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists ranked matches", func(t *testing.T) {
		t.Parallel()

		published := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
		documents := &mock.DocumentService{
			QueryFn: func(_ context.Context, text string, opts tickerlens.SearchOptions) ([]*tickerlens.SearchCandidate, error) {
				return []*tickerlens.SearchCandidate{{
					Document: &tickerlens.Document{
						Title:       "Apple beats estimates",
						URL:         "https://news.example.com/apple",
						BodyText:    "full body",
						PublishedAt: &published,
					},
					Relevance: 0.9,
					Recency:   0.5,
				}}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documents,
		}

		cmd := &main.DocsCmd{Query: "apple earnings", Limit: 10, TimebiasAlpha: 1.0}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Apple beats estimates")
		assert.Contains(t, output, "2026-08-20")
		assert.Contains(t, output, "score 1.400")
		assert.NotContains(t, output, "full body")
	})

	t.Run("full flag includes body text", func(t *testing.T) {
		t.Parallel()

		documents := &mock.DocumentService{
			QueryFn: func(_ context.Context, text string, opts tickerlens.SearchOptions) ([]*tickerlens.SearchCandidate, error) {
				return []*tickerlens.SearchCandidate{{
					Document: &tickerlens.Document{Title: "t", URL: "u", BodyText: "full body"},
				}}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documents,
		}

		cmd := &main.DocsCmd{Query: "anything", Limit: 10, TimebiasAlpha: 1.0, Full: true}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "full body")
	})

	t.Run("reports when nothing matches", func(t *testing.T) {
		t.Parallel()

		documents := &mock.DocumentService{
			QueryFn: func(context.Context, string, tickerlens.SearchOptions) ([]*tickerlens.SearchCandidate, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documents,
		}

		cmd := &main.DocsCmd{Query: "nothing here", Limit: 10, TimebiasAlpha: 1.0}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No matching articles.")
	})
}

func TestCountCmd_Run(t *testing.T) {
	t.Parallel()

	documents := &mock.DocumentService{
		CountFn: func(context.Context) (int, error) {
			return 42, nil
		},
	}

	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    &bytes.Buffer{},
		Documents: documents,
	}

	cmd := &main.CountCmd{}
	require.NoError(t, cmd.Run(deps))
	assert.Contains(t, stdout.String(), "42 articles stored")
}
